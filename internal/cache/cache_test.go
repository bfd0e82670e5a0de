// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinkan-app/shinkan/internal/cache"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// failingStore simulates a broken cache backend.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func (failingStore) DeletePrefix(context.Context, string) (int, error) {
	return 0, errors.New("connection refused")
}

/*
TestGetOrCompute_MissThenHit verifies the cache-aside cycle: the first call
computes and populates, the second is served from the cache without
touching the source.
*/
func TestGetOrCompute_MissThenHit(t *testing.T) {
	store := cache.NewMemory()
	computeCalls := 0

	compute := func(context.Context) (payload, error) {
		computeCalls++
		return payload{Name: "first", Count: computeCalls}, nil
	}

	first, err := cache.GetOrCompute(context.Background(), store, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "first", Count: 1}, first)
	assert.Equal(t, 1, computeCalls)

	second, err := cache.GetOrCompute(context.Background(), store, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, computeCalls, "hit must not recompute")
}

/*
TestGetOrCompute_DistinctKeys checks that different keys never share entries.
*/
func TestGetOrCompute_DistinctKeys(t *testing.T) {
	store := cache.NewMemory()

	a, err := cache.GetOrCompute(context.Background(), store, "a", time.Minute,
		func(context.Context) (payload, error) { return payload{Name: "a"}, nil })
	require.NoError(t, err)

	b, err := cache.GetOrCompute(context.Background(), store, "b", time.Minute,
		func(context.Context) (payload, error) { return payload{Name: "b"}, nil })
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, store.Len())
}

/*
TestGetOrCompute_TTLExpiry steps a fake clock past the TTL and expects a
recompute.
*/
func TestGetOrCompute_TTLExpiry(t *testing.T) {
	store := cache.NewMemory()
	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	store.Clock = func() time.Time { return now }

	computeCalls := 0
	compute := func(context.Context) (payload, error) {
		computeCalls++
		return payload{Count: computeCalls}, nil
	}

	_, err := cache.GetOrCompute(context.Background(), store, "k", time.Hour, compute)
	require.NoError(t, err)

	// Within the TTL: cached.
	now = now.Add(59 * time.Minute)
	_, err = cache.GetOrCompute(context.Background(), store, "k", time.Hour, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, computeCalls)

	// Past the TTL: recomputed.
	now = now.Add(2 * time.Minute)
	value, err := cache.GetOrCompute(context.Background(), store, "k", time.Hour, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, computeCalls)
	assert.Equal(t, 2, value.Count)
}

/*
TestGetOrCompute_DegradesOnBackendFailure verifies that a broken backend
never fails the read path: every call falls through to compute.
*/
func TestGetOrCompute_DegradesOnBackendFailure(t *testing.T) {
	computeCalls := 0
	compute := func(context.Context) (payload, error) {
		computeCalls++
		return payload{Name: "fresh", Count: computeCalls}, nil
	}

	for i := 1; i <= 2; i++ {
		value, err := cache.GetOrCompute(context.Background(), failingStore{}, "k", time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, i, value.Count)
	}

	assert.Equal(t, 2, computeCalls)
}

/*
TestGetOrCompute_CorruptEntryRecomputes plants a non-JSON payload and
expects a transparent recompute.
*/
func TestGetOrCompute_CorruptEntryRecomputes(t *testing.T) {
	store := cache.NewMemory()
	require.NoError(t, store.Set(context.Background(), "k", []byte("{not json"), time.Minute))

	value, err := cache.GetOrCompute(context.Background(), store, "k", time.Minute,
		func(context.Context) (payload, error) { return payload{Name: "repaired"}, nil })

	require.NoError(t, err)
	assert.Equal(t, "repaired", value.Name)
}

/*
TestGetOrCompute_ComputeErrorPropagates checks that only the source of
truth can fail the call, and failures are not cached.
*/
func TestGetOrCompute_ComputeErrorPropagates(t *testing.T) {
	store := cache.NewMemory()
	sourceErr := errors.New("database unavailable")

	_, err := cache.GetOrCompute(context.Background(), store, "k", time.Minute,
		func(context.Context) (payload, error) { return payload{}, sourceErr })

	require.ErrorIs(t, err, sourceErr)
	assert.Equal(t, 0, store.Len(), "failed compute must not populate the cache")
}

/*
TestMemory_DeletePrefix checks prefix invalidation boundaries.
*/
func TestMemory_DeletePrefix(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "releases:current:v1:a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "releases:search:v1:b", []byte("2"), time.Minute))
	require.NoError(t, store.Set(ctx, "metadata:filters:v1", []byte("3"), time.Minute))

	removed, err := store.DeletePrefix(ctx, "releases:")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = store.Get(ctx, "metadata:filters:v1")
	assert.NoError(t, err, "other prefixes must survive")
}
