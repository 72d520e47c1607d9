// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/spacegate/internal/resilience"
)

type failingSource struct {
	err   error
	calls int
}

func (f *failingSource) Overviews(context.Context) ([]Overview, error) {
	f.calls++
	return nil, f.err
}

func (f *failingSource) BySlug(context.Context, string) (Post, error) {
	f.calls++
	return Post{}, f.err
}

func newBreaker(name string) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(name, 2, time.Minute,
		resilience.WithFailureFilter(IsUpstreamFailure))
}

func TestBreakerSource_OpensOnUpstreamFailures(t *testing.T) {
	src := &failingSource{err: errors.New("upstream status 500")}
	bs := NewBreakerSource(src, newBreaker("posts-open-test"))
	ctx := context.Background()

	_, err := bs.Overviews(ctx)
	require.Error(t, err)
	_, err = bs.BySlug(ctx, "a")
	require.Error(t, err)

	_, err = bs.Overviews(ctx)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, 2, src.calls, "open circuit does not reach upstream")
}

func TestBreakerSource_NotFoundDoesNotTrip(t *testing.T) {
	src := &failingSource{err: ErrNotFound}
	bs := NewBreakerSource(src, newBreaker("posts-notfound-test"))

	for i := 0; i < 5; i++ {
		_, err := bs.BySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 5, src.calls)
}

func TestBreakerSource_ServiceMapsOpenToUpstreamError(t *testing.T) {
	src := &failingSource{err: errors.New("boom")}
	svc := NewService(NewBreakerSource(src, newBreaker("posts-service-test")), nil, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := svc.Overviews(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDisabled)
		assert.NotErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 2, src.calls)
}

func TestIsUpstreamFailure(t *testing.T) {
	assert.False(t, IsUpstreamFailure(nil))
	assert.False(t, IsUpstreamFailure(ErrNotFound))
	assert.False(t, IsUpstreamFailure(context.Canceled))
	assert.True(t, IsUpstreamFailure(context.DeadlineExceeded))
	assert.True(t, IsUpstreamFailure(errors.New("upstream status 502")))
}
