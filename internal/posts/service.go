// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/ManuGH/spacegate/internal/cache"
	xglog "github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/telemetry"
)

const (
	overviewsKey  = "posts:overviews"
	slugKeyPrefix = "posts:slug:"
	maxSlugLength = 200
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Service reads posts through the tag cache. Concurrent misses for the same
// key share one upstream fetch.
//
// Every tag carries a generation that Revalidate advances. A fetch only
// stores its result if the generation it started under is still current, so
// a fetch that straddles a revalidation cannot write pre-revalidation content
// back into the cache.
type Service struct {
	source Source
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	tracer trace.Tracer

	genMu sync.RWMutex
	gens  map[string]uint64
}

// NewService creates a posts service. A nil source yields a service whose
// reads fail with ErrDisabled; Revalidate still works.
func NewService(source Source, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Service{
		source: source,
		cache:  c,
		ttl:    ttl,
		tracer: telemetry.Tracer("spacegate/posts"),
		gens:   make(map[string]uint64),
	}
}

// Enabled reports whether an upstream source is configured.
func (s *Service) Enabled() bool {
	return s.source != nil
}

// Overviews returns the post list.
func (s *Service) Overviews(ctx context.Context) ([]Overview, error) {
	var out []Overview
	err := s.cached(ctx, overviewsKey, TagPostOverviews, &out, func(ctx context.Context) (any, error) {
		return s.source.Overviews(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Post returns the post named by slug.
func (s *Service) Post(ctx context.Context, slug string) (Post, error) {
	if len(slug) > maxSlugLength || !slugPattern.MatchString(slug) {
		return Post{}, fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}

	var out Post
	err := s.cached(ctx, slugKeyPrefix+slug, TagPostsBySlug, &out, func(ctx context.Context) (any, error) {
		return s.source.BySlug(ctx, slug)
	})
	if err != nil {
		return Post{}, err
	}
	return out, nil
}

// Revalidate drops every cached post and overview. It reports how many
// entries were removed; zero is not an error.
func (s *Service) Revalidate(ctx context.Context) (int, error) {
	tags := []string{TagPostsBySlug, TagPostOverviews}

	ctx, span := s.tracer.Start(ctx, "posts.revalidate",
		trace.WithAttributes(telemetry.InvalidationAttributes(tags)...))
	defer span.End()

	s.genMu.Lock()
	for _, tag := range tags {
		s.gens[tag]++
	}
	s.genMu.Unlock()

	n, err := s.cache.InvalidateTags(ctx, tags...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalidate failed")
		return n, fmt.Errorf("invalidate post tags: %w", err)
	}

	logger := xglog.WithComponentFromContext(ctx, "posts")
	logger.Info().
		Str(xglog.FieldEvent, "posts.revalidated").
		Strs(xglog.FieldCacheTag, tags).
		Int("entries", n).
		Msg("post cache revalidated")
	return n, nil
}

// cached serves key from the cache, or fetches, stores it under tag and
// decodes it into dst.
func (s *Service) cached(ctx context.Context, key, tag string, dst any, fetch func(context.Context) (any, error)) error {
	if s.source == nil {
		return ErrDisabled
	}

	ctx, span := s.tracer.Start(ctx, "posts.get")
	defer span.End()

	logger := xglog.WithComponentFromContext(ctx, "posts")

	if data, ok := s.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(data, dst); err == nil {
			span.SetAttributes(telemetry.CacheAttributes(key, true)...)
			return nil
		}
		logger.Warn().Str(xglog.FieldEvent, "posts.cache_corrupt").Str("key", key).Msg("dropping undecodable cache entry")
		s.cache.Delete(ctx, key)
	}
	span.SetAttributes(telemetry.CacheAttributes(key, false)...)

	// Callers arriving after a revalidation must not join a fetch that
	// started before it, hence the generation in the flight key.
	gen := s.generation(tag)
	flightKey := fmt.Sprintf("%s@%d", key, gen)

	// The shared fetch must not die with whichever caller arrived first.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(flightKey, func() (any, error) {
		item, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		if !s.storeIfCurrent(fetchCtx, key, tag, gen, data) {
			logger.Debug().
				Str(xglog.FieldEvent, "posts.store_skipped").
				Str("key", key).
				Msg("revalidated during fetch, result not cached")
		}
		return data, nil
	})
	span.SetAttributes(attribute.Bool("singleflight.shared", shared))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch failed")
			logger.Error().Err(err).
				Str(xglog.FieldEvent, "posts.fetch_failed").
				Str("key", key).
				Msg("upstream posts fetch failed")
		}
		return err
	}

	return json.Unmarshal(v.([]byte), dst)
}

func (s *Service) generation(tag string) uint64 {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	return s.gens[tag]
}

// storeIfCurrent caches data unless tag was revalidated after gen was read.
// The read lock spans the check and the write, so Revalidate either runs
// first and fails the check, or runs after and invalidates the entry.
func (s *Service) storeIfCurrent(ctx context.Context, key, tag string, gen uint64, data []byte) bool {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	if s.gens[tag] != gen {
		return false
	}
	s.cache.Set(ctx, key, data, s.ttl, tag)
	return true
}
