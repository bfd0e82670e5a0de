// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

/*
Package cache implements the cache-aside layer for the release query surface.

Every read path is wrapped in [GetOrCompute]: attempt a cache read, on miss
invoke the store, and populate the cache with a query-class-specific TTL.

Architecture:

  - Store: A byte-level key-value backend with expiry (Redis in production,
    an in-memory map in tests).
  - GetOrCompute: Generic get-or-compute wrapper with JSON value codec.
  - Keys: Deterministic key derivation per query class (see keys.go).

Degradation: a cache backend failure is never an error for the caller. Reads
fall through to the source of truth and the incident is logged at warning
level. Concurrent misses on one key may each compute and overwrite it; all
computations derive from the same store state, so last-write-wins is benign.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/shinkan-app/shinkan/internal/platform/ctxutil"
)

// ErrMiss is returned by [Store.Get] when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the byte-level cache backend contract.
type Store interface {

	// Get returns the value stored under key, or [ErrMiss].
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key starting with prefix and reports how
	// many were removed. Used for active invalidation after ingestion runs.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// ComputeFn produces the value on a cache miss.
type ComputeFn[T any] func(ctx context.Context) (T, error)

// GetOrCompute returns the cached value under key, or invokes compute,
// stores its result with the given TTL, and returns it.
//
// # Failure Modes
//
//   - Backend read failure degrades to a miss (logged, never raised).
//   - A corrupt cached payload degrades to a miss and is recomputed.
//   - Backend write failure after compute is logged and swallowed; the
//     computed value is still returned.
//   - Only compute itself can fail the call.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute ComputeFn[T]) (T, error) {
	log := ctxutil.GetLogger(ctx)

	payload, err := store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal(payload, &cached); jsonErr == nil {
			return cached, nil
		}
		// Corrupt entry: treat as a miss and recompute.
		log.WarnContext(ctx, "cache_entry_corrupt", slog.String("key", key))

	case !errors.Is(err, ErrMiss):
		log.WarnContext(ctx, "cache_read_degraded",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	payload, err = json.Marshal(value)
	if err != nil {
		log.WarnContext(ctx, "cache_marshal_failed", slog.String("key", key), slog.Any("error", err))
		return value, nil
	}

	if err := store.Set(ctx, key, payload, ttl); err != nil {
		log.WarnContext(ctx, "cache_write_degraded",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	return value, nil
}
