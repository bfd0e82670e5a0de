// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

/*
Package ingest pulls scheduled releases from external feeds into the catalogue.

Architecture:

  - Source: A pluggable feed adapter producing RawRelease records for a date
    window.
  - Reconciler: Deduplicates raw records against the store by ISBN-13 and
    records provenance.
  - Service: Orchestrates a sync run across all registered sources and
    invalidates the release cache afterwards.

One bad record never aborts a run: failures are counted per record and the
batch continues.
*/
package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shinkan-app/shinkan/internal/release"
)

// RawRelease is one release observation as reported by an external feed,
// before reconciliation against the catalogue.
type RawRelease struct {
	Title       string
	SeriesName  *string
	VolumeLabel *string
	ISBN13      *string
	ISBN10      *string
	ReleaseDate time.Time

	// PublisherName is the feed's display name for the publisher; the
	// reconciler resolves it to a catalogue row by slug.
	PublisherName string

	Format      *string
	PageCount   *int
	PriceUSD    *float64
	PriceGBP    *float64
	CoverURL    *string
	Description *string
	Demographic *string

	Genres       []string
	Regions      []string
	Authors      []string
	Illustrators []string

	// ExternalID and SourceURL identify the observation within its feed
	// and are persisted as provenance.
	ExternalID string
	SourceURL  string
	RawData    json.RawMessage
}

// Source is the contract every feed adapter implements.
type Source interface {

	// Name identifies the feed in provenance records and sync reports.
	Name() string

	/*
		FetchReleases returns every release the feed schedules within the
		window (inclusive).

		Parameters:
		  - context: context.Context
		  - window: release.Window (Inclusive date range to cover)

		Returns:
		  - []RawRelease: The feed's observations, unreconciled
		  - error: Feed connectivity or decoding failures
	*/
	FetchReleases(context context.Context, window release.Window) ([]RawRelease, error)

	// HealthCheck reports whether the feed is currently reachable.
	HealthCheck(context context.Context) error
}
