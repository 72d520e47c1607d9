// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"time"
)

// noOpCache is a cache that does nothing (useful for disabling caching).
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache anything.
func NewNoOpCache() Cache {
	return noOpCache{}
}

func (noOpCache) Get(context.Context, string) ([]byte, bool)                    { return nil, false }
func (noOpCache) Set(context.Context, string, []byte, time.Duration, ...string) {}
func (noOpCache) Delete(context.Context, string)                                {}
func (noOpCache) InvalidateTags(context.Context, ...string) (int, error)        { return 0, nil }
func (noOpCache) Clear(context.Context)                                         {}
func (noOpCache) Stats() CacheStats                                             { return CacheStats{} }
func (noOpCache) HealthCheck(context.Context) error                             { return nil }
func (noOpCache) Close() error                                                  { return nil }
