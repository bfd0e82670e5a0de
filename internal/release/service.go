// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release

import (
	"context"
	"time"

	"github.com/shinkan-app/shinkan/internal/cache"
	"github.com/shinkan-app/shinkan/internal/platform/constants"
	"github.com/shinkan-app/shinkan/internal/platform/validate"
	"github.com/shinkan-app/shinkan/pkg/pagination"
)

// # Service Contracts & Types

// CacheTTLs carries the per-query-class cache lifetimes.
//
// Current-month entries are the most volatile (same-day ingestion runs touch
// them); metadata enumerations barely change.
type CacheTTLs struct {
	Current  time.Duration
	Upcoming time.Duration
	Search   time.Duration
	Metadata time.Duration
}

// CurrentMonthResult is the response envelope for the current-month query.
type CurrentMonthResult struct {
	Data []*Release       `json:"data"`
	Meta CurrentMonthMeta `json:"meta"`
}

// CurrentMonthMeta extends pagination metadata with the resolved month key.
type CurrentMonthMeta struct {
	pagination.Meta
	Month string `json:"month"`
}

// UpcomingResult is the response envelope for the upcoming-months query.
//
// Data maps month keys (YYYY-MM) to their releases. Month keys sort
// lexicographically in chronological order; MonthsCovered fixes the window
// order explicitly for clients that need it.
type UpcomingResult struct {
	Data map[string][]*Release `json:"data"`
	Meta UpcomingMeta          `json:"meta"`
}

// UpcomingMeta carries the cross-month total and the covered month keys.
type UpcomingMeta struct {
	Total         int      `json:"total"`
	MonthsCovered []string `json:"months_covered"`
}

// SearchResult is the response envelope for the free-text search query.
type SearchResult struct {
	Data []*Release `json:"data"`
	Meta SearchMeta `json:"meta"`
}

// SearchMeta extends pagination metadata with the echoed query text.
type SearchMeta struct {
	pagination.Meta
	Query string `json:"query"`
}

// FilterOptions enumerates the values accepted by the filter parameters.
type FilterOptions struct {
	Publishers   []PublisherCount `json:"publishers"`
	Regions      []string         `json:"regions"`
	Formats      []Format         `json:"formats"`
	Demographics []Demographic    `json:"demographics"`
	Genres       []string         `json:"genres"`
}

// # Release Query Service

// Service answers the read use-cases by composing the calendar windows, the
// filter criteria, the cache-aside layer, and the persistent store.
//
// The store is never queried directly by handlers — every read goes through
// [cache.GetOrCompute] with a deterministic key and a per-class TTL.
type Service struct {
	releases   Repository
	publishers PublisherRepository
	cacheStore cache.Store
	ttls       CacheTTLs

	// Clock returns "today" for window arithmetic. Tests override it to
	// pin calendar boundaries.
	Clock func() time.Time
}

// NewService constructs the release query service.
func NewService(releases Repository, publishers PublisherRepository, cacheStore cache.Store, ttls CacheTTLs) *Service {
	return &Service{
		releases:   releases,
		publishers: publishers,
		cacheStore: cacheStore,
		ttls:       ttls,
		Clock:      time.Now,
	}
}

/*
CurrentMonth returns releases scheduled in the current calendar month,
filtered and sorted per the criteria.

Parameters:
  - context: context.Context
  - criteria: Criteria (Filters, sort, pagination; zero-value Sort defaults to date)

Returns:
  - *CurrentMonthResult: Page, totals, and the resolved month key
  - error: Validation or store failures
*/
func (service *Service) CurrentMonth(ctx context.Context, criteria Criteria) (*CurrentMonthResult, error) {
	criteria = normalizeCriteria(criteria, constants.DefaultCurrentLimit)

	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}

	window := CurrentMonthWindow(service.Clock())
	monthKey := MonthKey(window.First.Year(), window.First.Month())
	key := cache.CurrentKey(monthKey, criteria.CacheKeyPart())

	return cache.GetOrCompute(ctx, service.cacheStore, key, service.ttls.Current,
		func(ctx context.Context) (*CurrentMonthResult, error) {
			releases, total, err := service.releases.FindInRange(ctx, window, criteria)
			if err != nil {
				return nil, err
			}

			return &CurrentMonthResult{
				Data: emptyIfNil(releases),
				Meta: CurrentMonthMeta{
					Meta:  pagination.NewMeta(total, criteria.Limit, criteria.Offset),
					Month: monthKey,
				},
			}, nil
		})
}

/*
Upcoming returns releases for the next monthCount months, grouped by month
key in window order.

Parameters:
  - context: context.Context
  - monthCount: int (Number of months ahead, 1-4)
  - criteria: Criteria (Filters only; pagination is fixed per month)

Returns:
  - *UpcomingResult: Month-keyed groups, cross-month total, covered keys
  - error: Validation or store failures
*/
func (service *Service) Upcoming(ctx context.Context, monthCount int, criteria Criteria) (*UpcomingResult, error) {
	// Whole windows are fetched: pagination and sort are fixed per month.
	criteria.Limit = constants.DefaultCurrentLimit
	criteria.Offset = 0
	criteria.Sort = SortDate

	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}

	windows, err := UpcomingWindows(service.Clock(), monthCount)
	if err != nil {
		return nil, err
	}

	key := cache.UpcomingKey(windows[0].Key, monthCount, criteria.FilterKeyPart())

	return cache.GetOrCompute(ctx, service.cacheStore, key, service.ttls.Upcoming,
		func(ctx context.Context) (*UpcomingResult, error) {
			grouped := make(map[string][]*Release, len(windows))
			monthsCovered := make([]string, 0, len(windows))
			total := 0

			for _, month := range windows {
				releases, monthTotal, err := service.releases.FindInRange(ctx, month.Window, criteria)
				if err != nil {
					return nil, err
				}

				grouped[month.Key] = emptyIfNil(releases)
				monthsCovered = append(monthsCovered, month.Key)
				total += monthTotal
			}

			return &UpcomingResult{
				Data: grouped,
				Meta: UpcomingMeta{Total: total, MonthsCovered: monthsCovered},
			}, nil
		})
}

/*
Search returns releases whose title or series name contains the query text.

Parameters:
  - context: context.Context
  - params: SearchParams (Required text, optional date bounds, pagination)

Returns:
  - *SearchResult: Page, totals, and the echoed query
  - error: Validation or store failures
*/
func (service *Service) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if params.Limit < 1 || params.Limit > constants.MaxPageSize {
		params.Limit = constants.DefaultSearchLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	v := &validate.Validator{}
	v.Required("q", params.Text)
	if params.DateFrom != nil && params.DateTo != nil {
		v.Custom("date_to", params.DateTo.Before(*params.DateFrom), "Must not precede date_from")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	key := cache.SearchKey(params.CacheKeyPart())

	return cache.GetOrCompute(ctx, service.cacheStore, key, service.ttls.Search,
		func(ctx context.Context) (*SearchResult, error) {
			releases, total, err := service.releases.Search(ctx, params)
			if err != nil {
				return nil, err
			}

			return &SearchResult{
				Data: emptyIfNil(releases),
				Meta: SearchMeta{
					Meta:  pagination.NewMeta(total, params.Limit, params.Offset),
					Query: params.Text,
				},
			}, nil
		})
}

/*
FilterOptions returns the accepted values for every filter parameter,
combining live publisher counts with the static enumerations.
*/
func (service *Service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	return cache.GetOrCompute(ctx, service.cacheStore, cache.FiltersKey(), service.ttls.Metadata,
		func(ctx context.Context) (*FilterOptions, error) {
			publishers, err := service.publishers.ListWithReleaseCount(ctx)
			if err != nil {
				return nil, err
			}

			return &FilterOptions{
				Publishers:   publishers,
				Regions:      KnownRegions,
				Formats:      Formats(),
				Demographics: Demographics(),
				Genres:       KnownGenres,
			}, nil
		})
}

/*
Publishers returns every publisher with its release count.
*/
func (service *Service) Publishers(ctx context.Context) ([]PublisherCount, error) {
	return cache.GetOrCompute(ctx, service.cacheStore, cache.PublishersKey(), service.ttls.Metadata,
		func(ctx context.Context) ([]PublisherCount, error) {
			return service.publishers.ListWithReleaseCount(ctx)
		})
}

// # Validation Helpers

// normalizeCriteria fills the defaultable fields of a windowed query.
func normalizeCriteria(criteria Criteria, defaultLimit int) Criteria {
	if criteria.Sort == "" {
		criteria.Sort = SortDate
	}
	if criteria.Limit < 1 || criteria.Limit > constants.MaxPageSize {
		criteria.Limit = defaultLimit
	}
	if criteria.Offset < 0 {
		criteria.Offset = 0
	}
	return criteria
}

// validateCriteria rejects criteria outside the accepted parameter domain
// before any store or cache access.
func validateCriteria(criteria Criteria) error {
	v := &validate.Validator{}

	v.OneOf("sort", string(criteria.Sort), string(SortDate), string(SortTitle), string(SortPublisher))

	if criteria.PublisherSlug != "" {
		v.Slug("publisher", criteria.PublisherSlug)
	}

	return v.Err()
}

// emptyIfNil keeps empty pages serializing as [] rather than null.
func emptyIfNil(releases []*Release) []*Release {
	if releases == nil {
		return []*Release{}
	}
	return releases
}
