// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

var (
	cacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spacegate_cache_operations_total",
		Help: "Cache operations by backend, operation and result",
	}, []string{"backend", "op", "result"})

	cacheInvalidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spacegate_cache_invalidated_entries_total",
		Help: "Cache entries removed by tag invalidation",
	}, []string{"backend"})

	cacheEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spacegate_cache_entries",
		Help: "Live cache entries, sampled periodically",
	}, []string{"backend"})
)

// ReportSize samples the entry count of c into the spacegate_cache_entries
// gauge every interval until ctx ends.
func ReportSize(ctx context.Context, c Cache, backend string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		cacheEntries.WithLabelValues(backend).Set(float64(c.Stats().CurrentSize))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Backend names the implementation of c for metrics labels.
func Backend(c Cache) string {
	switch c.(type) {
	case *RedisCache:
		return backendRedis
	case *MemoryCache:
		return backendMemory
	default:
		return "noop"
	}
}
