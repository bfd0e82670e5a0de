// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package schema

// ReleasesTable represents the 'releases' table
type ReleasesTable struct {
	Table        string
	ID           string
	Title        string
	SeriesName   string
	VolumeLabel  string
	ISBN13       string
	ISBN10       string
	ReleaseDate  string
	PublisherID  string
	Format       string
	PageCount    string
	PriceUSD     string
	PriceGBP     string
	CoverURL     string
	Description  string
	Demographic  string
	Genres       string
	Regions      string
	Authors      string
	Illustrators string
	CreatedAt    string
	UpdatedAt    string
}

// Releases is the schema definition for releases
var Releases = ReleasesTable{
	Table:        "releases",
	ID:           "id",
	Title:        "title",
	SeriesName:   "series_name",
	VolumeLabel:  "volume_label",
	ISBN13:       "isbn_13",
	ISBN10:       "isbn_10",
	ReleaseDate:  "release_date",
	PublisherID:  "publisher_id",
	Format:       "format",
	PageCount:    "page_count",
	PriceUSD:     "price_usd",
	PriceGBP:     "price_gbp",
	CoverURL:     "cover_url",
	Description:  "description",
	Demographic:  "demographic",
	Genres:       "genres",
	Regions:      "regions",
	Authors:      "authors",
	Illustrators: "illustrators",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t ReleasesTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.SeriesName, t.VolumeLabel, t.ISBN13, t.ISBN10,
		t.ReleaseDate, t.PublisherID, t.Format, t.PageCount, t.PriceUSD,
		t.PriceGBP, t.CoverURL, t.Description, t.Demographic, t.Genres,
		t.Regions, t.Authors, t.Illustrators, t.CreatedAt, t.UpdatedAt,
	}
}
