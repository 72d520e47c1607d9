// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuGH/spacegate/internal/resilience"
)

// BreakerSource guards a Source with a circuit breaker, so a down CMS is not
// hammered by every cache miss. Unknown slugs and cancelled callers do not
// count as upstream failures.
type BreakerSource struct {
	next Source
	cb   *resilience.CircuitBreaker
}

// NewBreakerSource wraps next. The breaker opens after threshold consecutive
// upstream failures and probes again after reset.
func NewBreakerSource(next Source, cb *resilience.CircuitBreaker) *BreakerSource {
	return &BreakerSource{next: next, cb: cb}
}

// IsUpstreamFailure reports whether err should count against the breaker.
func IsUpstreamFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled)
}

func (s *BreakerSource) Overviews(ctx context.Context) ([]Overview, error) {
	var out []Overview
	err := s.cb.Execute(func() error {
		var err error
		out, err = s.next.Overviews(ctx)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, fmt.Errorf("posts upstream: %w", err)
	}
	return out, err
}

func (s *BreakerSource) BySlug(ctx context.Context, slug string) (Post, error) {
	var out Post
	err := s.cb.Execute(func() error {
		var err error
		out, err = s.next.BySlug(ctx, slug)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return Post{}, fmt.Errorf("posts upstream: %w", err)
	}
	return out, err
}
