// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release

import (
	"fmt"
	"net/url"
	"time"
)

// # Query Criteria

// Sort identifies the ordering of a windowed release query.
//
// Every sort breaks ties on the surrogate ID ascending so that paginated
// output is deterministic.
type Sort string

const (
	// SortDate orders by release date ascending (the default).
	SortDate Sort = "date"
	// SortTitle orders by title ascending.
	SortTitle Sort = "title"
	// SortPublisher orders by publisher name ascending.
	SortPublisher Sort = "publisher"
)

// IsValid reports whether s is a recognised [Sort] value.
func (s Sort) IsValid() bool {
	switch s {
	case SortDate, SortTitle, SortPublisher:
		return true
	}
	return false
}

// Criteria is the normalized representation of the optional filters, sort
// key, and pagination of a windowed release query.
//
// # Semantics
//
//   - PublisherSlug filters by the publisher's URL slug (never the surrogate
//     ID, which is not part of the external contract).
//   - Region is a set-membership test against the release's region set.
//   - Format is an exact match.
//
// Empty string means "no filter" for each of the three.
type Criteria struct {
	PublisherSlug string
	Region        string
	Format        string
	Sort          Sort
	Limit         int
	Offset        int
}

// CacheKeyPart returns the canonical, order-independent serialization of the
// criteria for cache-key derivation.
//
// The field order is fixed and values are URL-escaped, so two logically
// identical criteria always produce byte-identical strings and any parameter
// change produces a different one. The format is part of the persisted cache
// contract — do not reorder fields.
func (c Criteria) CacheKeyPart() string {
	return fmt.Sprintf("limit=%d&offset=%d&publisher=%s&region=%s&format=%s&sort=%s",
		c.Limit,
		c.Offset,
		url.QueryEscape(c.PublisherSlug),
		url.QueryEscape(c.Region),
		url.QueryEscape(c.Format),
		url.QueryEscape(string(c.Sort)),
	)
}

// FilterKeyPart is [CacheKeyPart] without the pagination segments, for query
// classes (upcoming) that fetch whole windows.
func (c Criteria) FilterKeyPart() string {
	return fmt.Sprintf("publisher=%s&region=%s&format=%s",
		url.QueryEscape(c.PublisherSlug),
		url.QueryEscape(c.Region),
		url.QueryEscape(c.Format),
	)
}

// SearchParams carries a free-text search query with optional inclusive date
// bounds and pagination.
type SearchParams struct {
	Text     string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// CacheKeyPart returns the canonical serialization of the search parameters.
// Absent date bounds serialize as empty segments.
func (p SearchParams) CacheKeyPart() string {
	return fmt.Sprintf("q=%s&limit=%d&offset=%d&from=%s&to=%s",
		url.QueryEscape(p.Text),
		p.Limit,
		p.Offset,
		formatDateBound(p.DateFrom),
		formatDateBound(p.DateTo),
	)
}

func formatDateBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
