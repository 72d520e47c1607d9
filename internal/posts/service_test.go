// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package posts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/spacegate/internal/cache"
)

type fakeSource struct {
	overviewCalls atomic.Int32
	slugCalls     atomic.Int32
	gate          chan struct{} // when non-nil, fetches block until closed
	posts         map[string]Post
	err           error
}

// Overviews snapshots the posts before blocking on the gate, like an
// upstream whose response is already on the wire.
func (f *fakeSource) Overviews(context.Context) ([]Overview, error) {
	out := make([]Overview, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p.Overview)
	}
	f.overviewCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return out, nil
}

func (f *fakeSource) BySlug(_ context.Context, slug string) (Post, error) {
	f.slugCalls.Add(1)
	if f.err != nil {
		return Post{}, f.err
	}
	p, ok := f.posts[slug]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func newFake() *fakeSource {
	return &fakeSource{posts: map[string]Post{
		"hello-world": {
			Overview: Overview{Slug: "hello-world", Title: "Hello", PublishedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
			Content:  "first post",
		},
	}}
}

func TestService_PostCachedUntilRevalidate(t *testing.T) {
	ctx := context.Background()
	src := newFake()
	svc := NewService(src, cache.NewMemoryCache(0), time.Minute)

	p, err := svc.Post(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "first post", p.Content)

	_, err = svc.Post(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.slugCalls.Load(), "second read must be served from cache")

	n, err := svc.Revalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.Post(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.slugCalls.Load(), "revalidate must force a refetch")
}

func TestService_OverviewsCachedUntilRevalidate(t *testing.T) {
	ctx := context.Background()
	src := newFake()
	svc := NewService(src, cache.NewMemoryCache(0), time.Minute)

	list, err := svc.Overviews(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hello-world", list[0].Slug)
	assert.True(t, list[0].PublishedAt.Equal(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))

	_, err = svc.Overviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.overviewCalls.Load())

	_, err = svc.Revalidate(ctx)
	require.NoError(t, err)
	_, err = svc.Overviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.overviewCalls.Load())
}

func TestService_RevalidateEmptyCache(t *testing.T) {
	svc := NewService(nil, cache.NewMemoryCache(0), time.Minute)

	n, err := svc.Revalidate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, nil, time.Minute)
	assert.False(t, svc.Enabled())

	_, err := svc.Overviews(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = svc.Post(context.Background(), "hello-world")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestService_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	src := newFake()
	svc := NewService(src, cache.NewMemoryCache(0), time.Minute)

	_, err := svc.Post(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Post(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(2), src.slugCalls.Load())
}

func TestService_InvalidSlug(t *testing.T) {
	svc := NewService(newFake(), cache.NewMemoryCache(0), time.Minute)

	for _, slug := range []string{"", "../etc", "a/b", "-lead", "sp ace"} {
		_, err := svc.Post(context.Background(), slug)
		assert.ErrorIs(t, err, ErrInvalidSlug, slug)
	}
}

func TestService_UpstreamErrorPropagates(t *testing.T) {
	src := newFake()
	src.err = errors.New("cms down")
	svc := NewService(src, cache.NewMemoryCache(0), time.Minute)

	_, err := svc.Overviews(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cms down")
}

func TestService_ConcurrentMissesCollapse(t *testing.T) {
	src := newFake()
	src.gate = make(chan struct{})
	svc := NewService(src, cache.NewMemoryCache(0), time.Minute)

	const callers = 8
	var started, wg sync.WaitGroup
	started.Add(callers)
	wg.Add(callers)
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			started.Done()
			_, err := svc.Overviews(context.Background())
			errs <- err
		}()
	}

	started.Wait()
	// Let the callers pile up on the in-flight fetch before releasing it.
	assert.Eventually(t, func() bool { return src.overviewCalls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), src.overviewCalls.Load())
}

func TestService_CorruptCacheEntryRefetches(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(0)
	c.Set(ctx, overviewsKey, []byte("{not json"), time.Minute, TagPostOverviews)

	src := newFake()
	svc := NewService(src, c, time.Minute)

	list, err := svc.Overviews(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int32(1), src.overviewCalls.Load())
}

func TestService_RevalidateDuringFetch(t *testing.T) {
	ctx := context.Background()
	src := newFake()
	src.gate = make(chan struct{})
	svc := NewService(src, cache.NewMemoryCache(0), time.Minute)

	type result struct {
		list []Overview
		err  error
	}
	fetch := func() chan result {
		ch := make(chan result, 1)
		go func() {
			list, err := svc.Overviews(ctx)
			ch <- result{list, err}
		}()
		return ch
	}

	before := fetch()
	require.Eventually(t, func() bool { return src.overviewCalls.Load() == 1 }, time.Second, time.Millisecond)

	_, err := svc.Revalidate(ctx)
	require.NoError(t, err)
	src.posts["hello-world"] = Post{Overview: Overview{Slug: "hello-world", Title: "Updated"}}

	// A read after the revalidation gets its own upstream fetch.
	after := fetch()
	require.Eventually(t, func() bool { return src.overviewCalls.Load() == 2 }, time.Second, time.Millisecond)
	close(src.gate)

	old := <-before
	require.NoError(t, old.err)
	require.Len(t, old.list, 1)
	assert.Equal(t, "Hello", old.list[0].Title)

	fresh := <-after
	require.NoError(t, fresh.err)
	require.Len(t, fresh.list, 1)
	assert.Equal(t, "Updated", fresh.list[0].Title)

	// The pre-revalidation result was never written back.
	cached, err := svc.Overviews(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Updated", cached[0].Title)
	assert.Equal(t, int32(2), src.overviewCalls.Load())
}

func TestService_StaleFetchNotStored(t *testing.T) {
	ctx := context.Background()
	src := newFake()
	src.gate = make(chan struct{})
	c := cache.NewMemoryCache(0)
	svc := NewService(src, c, time.Minute)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Overviews(ctx)
		done <- err
	}()
	require.Eventually(t, func() bool { return src.overviewCalls.Load() == 1 }, time.Second, time.Millisecond)

	_, err := svc.Revalidate(ctx)
	require.NoError(t, err)
	close(src.gate)
	require.NoError(t, <-done)

	_, ok := c.Get(ctx, overviewsKey)
	assert.False(t, ok)
}
