// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package cache provides a tag-aware TTL cache with in-memory and Redis backends.
//
// Entries may carry tags. InvalidateTags drops every entry carrying any of the
// given tags, which is how content caches are revalidated on demand.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. Returns false if not found or expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores a value with the given TTL and optional tags.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string)
	// Delete removes a value.
	Delete(ctx context.Context, key string)
	// InvalidateTags removes every entry carrying any of tags and returns the
	// number of entries removed. Unknown tags are not an error.
	InvalidateTags(ctx context.Context, tags ...string) (int, error)
	// Clear removes all values.
	Clear(ctx context.Context)
	// Stats returns cache statistics.
	Stats() CacheStats
	// HealthCheck reports whether the backend is usable.
	HealthCheck(ctx context.Context) error
	// Close releases background resources.
	Close() error
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	Hits          int64 // Successful Get operations
	Misses        int64 // Failed Get operations (not found or expired)
	Sets          int64 // Set operations
	Evictions     int64 // Expired entries cleaned up
	Invalidations int64 // Entries removed by tag
	CurrentSize   int   // Current number of cached entries
}

type counters struct {
	hits          atomic.Int64
	misses        atomic.Int64
	sets          atomic.Int64
	evictions     atomic.Int64
	invalidations atomic.Int64
}

func (c *counters) snapshot(size int) CacheStats {
	return CacheStats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Sets:          c.sets.Load(),
		Evictions:     c.evictions.Load(),
		Invalidations: c.invalidations.Load(),
		CurrentSize:   size,
	}
}

type entry struct {
	value      []byte
	expiration time.Time
	tags       []string
}

func (e *entry) isExpired(now time.Time) bool {
	return now.After(e.expiration)
}

// MemoryCache is the in-process implementation of Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	tags    map[string]map[string]struct{} // tag -> keys
	stats   counters
	now     func() time.Time

	janitor  *janitor
	stopOnce sync.Once
}

// NewMemoryCache creates a new in-memory cache.
// A positive cleanupInterval starts a janitor goroutine; stop it with Close.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*entry),
		tags:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}

	if cleanupInterval > 0 {
		c.janitor = &janitor{
			interval: cleanupInterval,
			stop:     make(chan struct{}),
			done:     make(chan struct{}),
		}
		go c.janitor.run(c)
	}

	return c
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found || e.isExpired(c.now()) {
		c.stats.misses.Add(1)
		cacheOps.WithLabelValues(backendMemory, "get", "miss").Inc()
		return nil, false
	}

	c.stats.hits.Add(1)
	cacheOps.WithLabelValues(backendMemory, "get", "hit").Inc()
	return e.value, true
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)
	c.entries[key] = &entry{
		value:      value,
		expiration: c.now().Add(ttl),
		tags:       tags,
	}
	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	c.stats.sets.Add(1)
	cacheOps.WithLabelValues(backendMemory, "set", "ok").Inc()
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// InvalidateTags removes every entry carrying any of tags.
func (c *MemoryCache) InvalidateTags(_ context.Context, tags ...string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, tag := range tags {
		for key := range c.tags[tag] {
			if c.removeLocked(key) {
				removed++
			}
		}
		delete(c.tags, tag)
	}

	c.stats.invalidations.Add(int64(removed))
	cacheInvalidated.WithLabelValues(backendMemory).Add(float64(removed))
	return removed, nil
}

// Clear removes all values from the cache.
func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.tags = make(map[string]map[string]struct{})
}

// Stats returns cache statistics.
func (c *MemoryCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()
	return c.stats.snapshot(size)
}

// HealthCheck always succeeds for the in-memory backend.
func (c *MemoryCache) HealthCheck(context.Context) error {
	return nil
}

// Close stops the janitor, if any. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	if c.janitor == nil {
		return nil
	}
	c.stopOnce.Do(func() {
		close(c.janitor.stop)
		<-c.janitor.done
	})
	return nil
}

// removeLocked drops key and its tag memberships. c.mu must be held.
func (c *MemoryCache) removeLocked(key string) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	delete(c.entries, key)
	for _, tag := range e.tags {
		if keys, ok := c.tags[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tags, tag)
			}
		}
	}
	return true
}

// deleteExpired removes all expired entries and returns how many it removed.
func (c *MemoryCache) deleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	count := 0
	for key, e := range c.entries {
		if e.isExpired(now) {
			c.removeLocked(key)
			count++
		}
	}

	c.stats.evictions.Add(int64(count))
	return count
}

// janitor performs periodic cleanup of expired entries.
type janitor struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func (j *janitor) run(c *MemoryCache) {
	defer close(j.done)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-j.stop:
			return
		}
	}
}

var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*RedisCache)(nil)
)
