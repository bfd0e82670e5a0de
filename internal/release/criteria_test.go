// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shinkan-app/shinkan/internal/release"
	"github.com/shinkan-app/shinkan/pkg/pointer"
)

/*
TestCriteria_CacheKeyPart pins the canonical serialization: identical
criteria yield identical strings, any parameter change diverges, and the
field order never moves.
*/
func TestCriteria_CacheKeyPart(t *testing.T) {
	base := release.Criteria{
		PublisherSlug: "viz-media",
		Region:        "us",
		Format:        "Paperback",
		Sort:          release.SortDate,
		Limit:         100,
		Offset:        0,
	}

	t.Run("fixed_serialization", func(t *testing.T) {
		assert.Equal(t,
			"limit=100&offset=0&publisher=viz-media&region=us&format=Paperback&sort=date",
			base.CacheKeyPart(),
		)
	})

	t.Run("identical_criteria_identical_key", func(t *testing.T) {
		duplicate := base
		assert.Equal(t, base.CacheKeyPart(), duplicate.CacheKeyPart())
	})

	t.Run("every_field_diverges_the_key", func(t *testing.T) {
		variants := []release.Criteria{
			{PublisherSlug: "yen-press", Region: "us", Format: "Paperback", Sort: release.SortDate, Limit: 100},
			{PublisherSlug: "viz-media", Region: "uk", Format: "Paperback", Sort: release.SortDate, Limit: 100},
			{PublisherSlug: "viz-media", Region: "us", Format: "Hardcover", Sort: release.SortDate, Limit: 100},
			{PublisherSlug: "viz-media", Region: "us", Format: "Paperback", Sort: release.SortTitle, Limit: 100},
			{PublisherSlug: "viz-media", Region: "us", Format: "Paperback", Sort: release.SortDate, Limit: 50},
			{PublisherSlug: "viz-media", Region: "us", Format: "Paperback", Sort: release.SortDate, Limit: 100, Offset: 100},
		}

		seen := map[string]bool{base.CacheKeyPart(): true}
		for _, variant := range variants {
			key := variant.CacheKeyPart()
			assert.False(t, seen[key], "key collision for %+v", variant)
			seen[key] = true
		}
	})

	t.Run("unfiltered_fields_serialize_empty", func(t *testing.T) {
		empty := release.Criteria{Sort: release.SortDate, Limit: 100}
		assert.Equal(t,
			"limit=100&offset=0&publisher=&region=&format=&sort=date",
			empty.CacheKeyPart(),
		)
	})

	t.Run("values_are_escaped", func(t *testing.T) {
		odd := release.Criteria{Format: "Box Set&Co", Sort: release.SortDate, Limit: 10}
		assert.Equal(t,
			"limit=10&offset=0&publisher=&region=&format=Box+Set%26Co&sort=date",
			odd.CacheKeyPart(),
		)
	})
}

/*
TestCriteria_FilterKeyPart checks the pagination-free serialization used by
whole-window query classes.
*/
func TestCriteria_FilterKeyPart(t *testing.T) {
	criteria := release.Criteria{
		PublisherSlug: "kodansha-comics",
		Region:        "ca",
		Format:        "Digital",
		Limit:         100,
		Offset:        40,
	}

	assert.Equal(t, "publisher=kodansha-comics&region=ca&format=Digital", criteria.FilterKeyPart())

	// Pagination must not leak into the filter key.
	paged := criteria
	paged.Offset = 80
	assert.Equal(t, criteria.FilterKeyPart(), paged.FilterKeyPart())
}

/*
TestSearchParams_CacheKeyPart checks the search serialization with and
without date bounds.
*/
func TestSearchParams_CacheKeyPart(t *testing.T) {
	t.Run("without_bounds", func(t *testing.T) {
		params := release.SearchParams{Text: "chainsaw man", Limit: 50}
		assert.Equal(t, "q=chainsaw+man&limit=50&offset=0&from=&to=", params.CacheKeyPart())
	})

	t.Run("with_bounds", func(t *testing.T) {
		params := release.SearchParams{
			Text:     "vinland",
			DateFrom: pointer.To(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
			DateTo:   pointer.To(time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)),
			Limit:    50,
			Offset:   50,
		}
		assert.Equal(t, "q=vinland&limit=50&offset=50&from=2026-03-01&to=2026-06-30", params.CacheKeyPart())
	})
}

/*
TestSort_IsValid enumerates the accepted sort keys.
*/
func TestSort_IsValid(t *testing.T) {
	assert.True(t, release.SortDate.IsValid())
	assert.True(t, release.SortTitle.IsValid())
	assert.True(t, release.SortPublisher.IsValid())
	assert.False(t, release.Sort("isbn").IsValid())
	assert.False(t, release.Sort("").IsValid())
}
