// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

/*
Package release defines the core domain of the Shinkan release radar.

It tracks scheduled manga volume releases (a title tied to a date, a publisher,
and descriptive attributes) and answers the three read use-cases: current
calendar month, upcoming months grouped by month, and free-text search.

Core Responsibility:

  - Calendar: Month-aligned date windows with correct year rollover.
  - Discovery: Filter criteria (publisher, region, format), sorting, pagination.
  - Provenance: Source records linking releases to the external feeds that
    reported them.

This package acts as the source of truth for all release-related data models.
*/
package release

import "time"

// # Domain Enums

// Format tags the physical or digital edition of a release.
type Format string

const (
	FormatPaperback Format = "Paperback"
	FormatHardcover Format = "Hardcover"
	FormatDigital   Format = "Digital"
)

// Formats returns the known format tags in display order.
func Formats() []Format {
	return []Format{FormatPaperback, FormatHardcover, FormatDigital}
}

// Demographic classifies the target readership of a release.
type Demographic string

const (
	DemographicShonen Demographic = "Shonen"
	DemographicShojo  Demographic = "Shojo"
	DemographicSeinen Demographic = "Seinen"
	DemographicJosei  Demographic = "Josei"
	DemographicKodomo Demographic = "Kodomo"
)

// Demographics returns the known demographic tags in display order.
func Demographics() []Demographic {
	return []Demographic{
		DemographicShonen,
		DemographicShojo,
		DemographicSeinen,
		DemographicJosei,
		DemographicKodomo,
	}
}

// KnownRegions are the distribution regions the radar tracks.
var KnownRegions = []string{"us", "uk", "ca", "au"}

// KnownGenres are the genre tags exposed by the filter metadata endpoint.
var KnownGenres = []string{
	"Action", "Adventure", "Comedy", "Drama", "Fantasy",
	"Horror", "Mystery", "Romance", "Sci-Fi", "Slice of Life",
	"Sports", "Supernatural", "Thriller", "Historical",
}

// # Core Entities

// Publisher is a company that schedules releases.
//
// The slug is the external filter key: the API never exposes or accepts the
// surrogate ID for filtering. Slugs are immutable once assigned.
type Publisher struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Country *string `json:"country"`
}

// Release is the central aggregate of the Shinkan domain.
// It represents a single scheduled volume release.
//
// # Natural Key
//
// ISBN13, when present, is globally unique and is the dedup key for
// ingestion. A release without an ISBN-13 can never be matched again: every
// ingestion of such a record creates a new row.
type Release struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	SeriesName  *string `json:"series_name"`
	VolumeLabel *string `json:"volume_label"`
	ISBN13      *string `json:"isbn_13"`
	ISBN10      *string `json:"isbn_10"`

	// ReleaseDate is date-only; the time component is always midnight UTC.
	ReleaseDate time.Time `json:"release_date"`

	Publisher Publisher `json:"publisher"`

	Format      *string  `json:"format"`
	PageCount   *int     `json:"page_count"`
	PriceUSD    *float64 `json:"price_usd"`
	PriceGBP    *float64 `json:"price_gbp"`
	CoverURL    *string  `json:"cover_image_url"`
	Description *string  `json:"description"`
	Demographic *string  `json:"demographic"`

	// Set-valued attributes. Unordered; regions supports membership filtering.
	Genres       []string `json:"genres"`
	Regions      []string `json:"regions"`
	Authors      []string `json:"authors"`
	Illustrators []string `json:"illustrators"`
}

// SourceRecord links one release to one external feed observation.
//
// Many source records may reference one release (multiple sources confirming
// the same volume). Records are owned by their release and removed with it.
type SourceRecord struct {
	ID         int64     `json:"id"`
	ReleaseID  int64     `json:"release_id"`
	SourceName string    `json:"source_name"`
	ExternalID string    `json:"external_id"`
	SourceURL  *string   `json:"source_url"`
	RawData    []byte    `json:"-"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// PublisherCount pairs a publisher with its number of scheduled releases.
type PublisherCount struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ReleaseCount int    `json:"release_count"`
}

// UpsertOutcome reports whether an upsert created a new row or rewrote an
// existing one.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)
