// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package cache

import (
	"strconv"

	"github.com/shinkan-app/shinkan/internal/platform/constants"
)

// # Key Derivation
//
// Keys are a pure function of the query class and the canonical serialization
// of its parameters: byte-identical for logically identical requests,
// distinct for any parameter change. Windowed classes embed the resolved
// month so a calendar rollover rolls the key instead of serving the previous
// month's entry until its TTL runs out. The v1 tag versions the payload shape
// so a future envelope change can roll keys without a flush.

const (
	currentClass   = constants.RedisPrefixReleases + "current:v1:"
	upcomingClass  = constants.RedisPrefixReleases + "upcoming:v1:"
	searchClass    = constants.RedisPrefixReleases + "search:v1:"
	filtersKey     = constants.RedisPrefixMetadata + "filters:v1"
	publishersKey  = constants.RedisPrefixMetadata + "publishers:v1"
)

// CurrentKey derives the cache key for a current-month query.
// monthKey is the resolved YYYY-MM window; params is the canonical criteria
// serialization (Criteria.CacheKeyPart).
func CurrentKey(monthKey, params string) string {
	return currentClass + "month=" + monthKey + "&" + params
}

// UpcomingKey derives the cache key for an upcoming-months query.
// firstMonthKey anchors the resolved window (the month after "today").
func UpcomingKey(firstMonthKey string, months int, filterParams string) string {
	return upcomingClass + "from=" + firstMonthKey + "&months=" + strconv.Itoa(months) + "&" + filterParams
}

// SearchKey derives the cache key for a free-text search query.
func SearchKey(params string) string {
	return searchClass + params
}

// FiltersKey is the cache key for the filter metadata enumeration.
func FiltersKey() string { return filtersKey }

// PublishersKey is the cache key for the publisher listing.
func PublishersKey() string { return publishersKey }

// ReleasesPrefix covers every release query class, for active invalidation.
func ReleasesPrefix() string { return constants.RedisPrefixReleases }
