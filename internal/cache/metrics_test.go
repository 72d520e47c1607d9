// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestReportSize_SamplesOnceWhenCancelled(t *testing.T) {
	c := NewMemoryCache(0)
	t.Cleanup(func() { _ = c.Close() })
	c.Set(context.Background(), "a", []byte("1"), time.Minute)
	c.Set(context.Background(), "b", []byte("2"), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ReportSize(ctx, c, "report-test", time.Hour)

	assert.Equal(t, 2.0, testutil.ToFloat64(cacheEntries.WithLabelValues("report-test")))
}

func TestBackend(t *testing.T) {
	mem := NewMemoryCache(0)
	t.Cleanup(func() { _ = mem.Close() })

	assert.Equal(t, "memory", Backend(mem))
	assert.Equal(t, "noop", Backend(NewNoOpCache()))
}
