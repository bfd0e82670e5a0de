// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package ingest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinkan-app/shinkan/internal/cache"
	"github.com/shinkan-app/shinkan/internal/ingest"
	"github.com/shinkan-app/shinkan/internal/release"
)

// scriptedSource returns canned records or failures.
type scriptedSource struct {
	name      string
	records   []ingest.RawRelease
	fetchErr  error
	healthErr error

	gotWindow release.Window
}

func (source *scriptedSource) Name() string { return source.name }

func (source *scriptedSource) HealthCheck(context.Context) error { return source.healthErr }

func (source *scriptedSource) FetchReleases(_ context.Context, window release.Window) ([]ingest.RawRelease, error) {
	source.gotWindow = window
	if source.fetchErr != nil {
		return nil, source.fetchErr
	}
	return source.records, nil
}

func newSyncService(sources []ingest.Source, store cache.Store, invalidate bool) *ingest.Service {
	reconciler := ingest.NewReconciler(newMemoryReleaseStore(), newMemoryPublisherStore())
	service := ingest.NewService(sources, reconciler, store, 3, invalidate)
	service.Clock = func() time.Time {
		return time.Date(2026, time.November, 10, 6, 0, 0, 0, time.UTC)
	}
	return service
}

/*
TestService_Sync covers the fetch window span, per-source summaries, and
the post-run cache sweep.
*/
func TestService_Sync(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	// Seed cache entries on both sides of the invalidation boundary.
	require.NoError(t, store.Set(ctx, "releases:current:v1:x", []byte("1"), time.Hour))
	require.NoError(t, store.Set(ctx, "releases:upcoming:v1:y", []byte("2"), time.Hour))
	require.NoError(t, store.Set(ctx, "metadata:filters:v1", []byte("3"), time.Hour))

	source := &scriptedSource{name: "mock", records: []ingest.RawRelease{
		rawRecord("Synced Volume", "9781974736530", "VIZ Media"),
	}}

	service := newSyncService([]ingest.Source{source}, store, true)

	report, err := service.Sync(ctx, 0)
	require.NoError(t, err)

	// Window: first of the current month through the 3-month horizon.
	assert.Equal(t, "2026-11-01", report.WindowFrom)
	assert.Equal(t, "2027-02-28", report.WindowTo)
	assert.Equal(t, time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC), source.gotWindow.First)

	require.Len(t, report.Sources, 1)
	assert.Equal(t, "mock", report.Sources[0].SourceName)
	assert.Equal(t, 1, report.Sources[0].Created)

	// Release keys swept, metadata untouched.
	assert.Equal(t, 2, report.CacheKeysDropped)
	_, err = store.Get(ctx, "metadata:filters:v1")
	assert.NoError(t, err)
}

/*
TestService_Sync_InvalidationDisabled leaves the cache alone when the
operator opts out.
*/
func TestService_Sync_InvalidationDisabled(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "releases:current:v1:x", []byte("1"), time.Hour))

	service := newSyncService([]ingest.Source{&scriptedSource{name: "mock"}}, store, false)

	report, err := service.Sync(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, -1, report.CacheKeysDropped)
	_, err = store.Get(ctx, "releases:current:v1:x")
	assert.NoError(t, err)
}

/*
TestService_Sync_HorizonOverride narrows and rejects per-run horizons.
*/
func TestService_Sync_HorizonOverride(t *testing.T) {
	source := &scriptedSource{name: "mock"}
	service := newSyncService([]ingest.Source{source}, cache.NewMemory(), false)

	report, err := service.Sync(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-11-01", report.WindowFrom)
	assert.Equal(t, "2026-12-31", report.WindowTo, "override shrinks the horizon for this run")

	_, err = service.Sync(context.Background(), 9)
	require.Error(t, err, "override is bounded like the query horizon")
}

/*
TestService_Sync_SourceFailuresAreIsolated checks that unhealthy or failing
sources produce empty summaries while healthy sources still land.
*/
func TestService_Sync_SourceFailuresAreIsolated(t *testing.T) {
	unhealthy := &scriptedSource{name: "down", healthErr: errors.New("connect timeout")}
	broken := &scriptedSource{name: "broken", fetchErr: errors.New("upstream 500")}
	healthy := &scriptedSource{name: "mock", records: []ingest.RawRelease{
		rawRecord("Landed Volume", "9781427816410", "Seven Seas"),
	}}

	service := newSyncService([]ingest.Source{unhealthy, broken, healthy}, cache.NewMemory(), false)

	report, err := service.Sync(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, report.Sources, 3)

	assert.Equal(t, 0, report.Sources[0].Fetched)
	assert.Equal(t, 0, report.Sources[1].Fetched)
	assert.Equal(t, 1, report.Sources[2].Created)
}
