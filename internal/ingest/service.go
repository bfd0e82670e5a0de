// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/shinkan-app/shinkan/internal/cache"
	"github.com/shinkan-app/shinkan/internal/platform/ctxutil"
	"github.com/shinkan-app/shinkan/internal/release"
)

// SyncReport aggregates one full sync run across all registered sources.
type SyncReport struct {
	StartedAt  time.Time  `json:"started_at"`
	Duration   string     `json:"duration"`
	WindowFrom string     `json:"window_from"`
	WindowTo   string     `json:"window_to"`
	Sources    []*Summary `json:"sources"`

	// CacheKeysDropped is -1 when invalidation is disabled.
	CacheKeysDropped int `json:"cache_keys_dropped"`
}

// Service runs sync cycles: fetch from every source, reconcile, then drop
// the release query cache so readers see fresh data immediately.
type Service struct {
	sources    []Source
	reconciler *Reconciler
	cacheStore cache.Store

	monthsAhead     int
	invalidateCache bool

	// Clock returns "today" for window derivation. Tests override it.
	Clock func() time.Time
}

// NewService constructs the sync service.
//
// monthsAhead controls how far past the current month each run fetches;
// invalidateCache controls whether a run ends with an active cache sweep.
func NewService(sources []Source, reconciler *Reconciler, cacheStore cache.Store, monthsAhead int, invalidateCache bool) *Service {
	return &Service{
		sources:         sources,
		reconciler:      reconciler,
		cacheStore:      cacheStore,
		monthsAhead:     monthsAhead,
		invalidateCache: invalidateCache,
		Clock:           time.Now,
	}
}

/*
Sync runs one full ingestion cycle.

The fetch window spans from the first day of the current month through the
last day of the horizon. An unhealthy or failing source is reported in its
summary and never aborts the run; the cycle errors only when the window
cannot be derived or the context is cancelled.

Parameters:
  - context: context.Context
  - monthsAhead: int (Horizon override for this run; <= 0 uses the
    configured default)

Returns:
  - *SyncReport: Per-source summaries plus cache invalidation stats
  - error: Window derivation or context cancellation
*/
func (service *Service) Sync(context context.Context, monthsAhead int) (*SyncReport, error) {
	log := ctxutil.GetLogger(context)
	startedAt := service.Clock()

	if monthsAhead <= 0 {
		monthsAhead = service.monthsAhead
	}

	window, err := service.fetchWindow(startedAt, monthsAhead)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{
		StartedAt:        startedAt.UTC(),
		WindowFrom:       window.First.Format("2006-01-02"),
		WindowTo:         window.Last.Format("2006-01-02"),
		Sources:          make([]*Summary, 0, len(service.sources)),
		CacheKeysDropped: -1,
	}

	for _, source := range service.sources {
		summary, err := service.syncSource(context, source, window)
		if err != nil {
			return report, err
		}
		report.Sources = append(report.Sources, summary)
	}

	if service.invalidateCache {
		dropped, err := service.cacheStore.DeletePrefix(context, cache.ReleasesPrefix())
		if err != nil {
			// Stale entries age out by TTL; the sync itself succeeded.
			log.WarnContext(context, "sync_cache_invalidation_failed", slog.Any("error", err))
		} else {
			report.CacheKeysDropped = dropped
		}
	}

	report.Duration = service.Clock().Sub(startedAt).Round(time.Millisecond).String()

	log.InfoContext(context, "sync_completed",
		slog.String("window_from", report.WindowFrom),
		slog.String("window_to", report.WindowTo),
		slog.Int("sources", len(report.Sources)),
		slog.Int("cache_keys_dropped", report.CacheKeysDropped),
	)

	return report, nil
}

// syncSource fetches and reconciles one source. Fetch failures produce an
// all-failed summary rather than an error.
func (service *Service) syncSource(context context.Context, source Source, window release.Window) (*Summary, error) {
	log := ctxutil.GetLogger(context)

	if err := source.HealthCheck(context); err != nil {
		log.WarnContext(context, "sync_source_unhealthy",
			slog.String("source", source.Name()),
			slog.Any("error", err),
		)
		return &Summary{SourceName: source.Name(), Outcomes: []RecordOutcome{}}, nil
	}

	records, err := source.FetchReleases(context, window)
	if err != nil {
		log.ErrorContext(context, "sync_source_fetch_failed",
			slog.String("source", source.Name()),
			slog.Any("error", err),
		)
		return &Summary{SourceName: source.Name(), Outcomes: []RecordOutcome{}}, nil
	}

	return service.reconciler.Reconcile(context, source.Name(), records)
}

// fetchWindow spans the current month plus monthsAhead.
func (service *Service) fetchWindow(today time.Time, monthsAhead int) (release.Window, error) {
	current := release.CurrentMonthWindow(today)

	horizon, err := release.UpcomingWindows(today, monthsAhead)
	if err != nil {
		return release.Window{}, err
	}

	return release.Window{
		First: current.First,
		Last:  horizon[len(horizon)-1].Last,
	}, nil
}
