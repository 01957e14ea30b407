// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cache provides a bounded in-process cache with per-entry TTL.
//
// # Architecture
//
// It wraps ristretto so callers deal in string keys and a fixed TTL. Admission is
// probabilistic: a Set may be dropped under contention, so the cache must only
// front data that can always be reloaded from its store.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Sizing for a single API instance. Every entry costs 1, so maxEntries is a count.
const (
	maxEntries  = 10_000
	numCounters = maxEntries * 10
	bufferItems = 64
)

// Cache is a TTL cache keyed by string. The zero value and a nil *Cache are disabled
// caches: every lookup misses and every write is ignored.
type Cache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

// New creates a cache whose entries expire after ttl. A non-positive ttl returns a
// disabled cache.
func New(ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return &Cache{}, nil
	}

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxEntries,
		BufferItems: bufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: failed to initialize: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	return c.client.Get(key)
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(key string, value any) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.SetWithTTL(key, value, 1, c.ttl)
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(key)
}

// Wait blocks until buffered writes are applied. Tests use it to make Set visible.
func (c *Cache) Wait() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Wait()
}

// Close stops the cache's background goroutines.
func (c *Cache) Close() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Close()
}
