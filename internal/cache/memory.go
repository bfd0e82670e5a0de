// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process [Store] with TTL expiry.
//
// It exists so tests (and redis-less development) can substitute a
// deterministic cache without network dependencies. Expiry is checked
// lazily on read; there is no background eviction.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// Clock returns the current time. Tests override it to step through
	// TTL expiry deterministically.
	Clock func() time.Time
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemory creates an empty in-memory cache store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		Clock:   time.Now,
	}
}

// Get returns the value stored under key, or [ErrMiss].
func (store *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, found := store.entries[key]
	if !found {
		return nil, ErrMiss
	}

	if store.Clock().After(entry.expiresAt) {
		delete(store.entries, key)
		return nil, ErrMiss
	}

	return entry.payload, nil
}

// Set stores value under key with the given expiry.
func (store *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[key] = memoryEntry{
		payload:   value,
		expiresAt: store.Clock().Add(ttl),
	}

	return nil
}

// Delete removes the key.
func (store *Memory) Delete(ctx context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, key)
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (store *Memory) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	removed := 0
	for key := range store.entries {
		if strings.HasPrefix(key, prefix) {
			delete(store.entries, key)
			removed++
		}
	}

	return removed, nil
}

// Len reports the number of live entries; test helper.
func (store *Memory) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.entries)
}
