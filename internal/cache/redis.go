// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements [Store] backed by a Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed cache store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Get returns the value stored under key.

Returns:
  - []byte: The stored payload
  - error: ErrMiss when absent or expired, connectivity errors otherwise
*/
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := store.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis_cache_get_failed: %w", err)
	}

	return payload, nil
}

/*
Set stores value under key with the given expiry.
*/
func (store *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := store.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}

	return nil
}

/*
Delete removes the key. Deleting an absent key is not an error.
*/
func (store *RedisStore) Delete(ctx context.Context, key string) error {
	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_cache_delete_failed: %w", err)
	}

	return nil
}

/*
DeletePrefix removes every key starting with prefix via a SCAN iteration.

Description: SCAN (not KEYS) keeps the operation incremental so an
invalidation sweep never blocks the Redis event loop.

Returns:
  - int: Number of keys removed
  - error: Scan or deletion failures
*/
func (store *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	var removed int

	iter := store.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := store.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("redis_cache_invalidate_failed: %w", err)
		}
		removed++
	}

	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis_cache_scan_failed: %w", err)
	}

	return removed, nil
}
