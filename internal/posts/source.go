// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ManuGH/spacegate/internal/platform/httpx"
)

// Source fetches posts from wherever they are authored.
type Source interface {
	Overviews(ctx context.Context) ([]Overview, error)
	BySlug(ctx context.Context, slug string) (Post, error)
}

// maxBodyBytes bounds upstream responses.
const maxBodyBytes = 4 << 20

// HTTPSource reads posts from a JSON CMS API:
//
//	GET {base}/posts          -> []Overview
//	GET {base}/posts/{slug}   -> Post (404 when unknown)
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source rooted at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse posts url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("posts url must be http or https, got %q", baseURL)
	}
	return &HTTPSource{
		base:   u,
		client: httpx.NewClient(timeout),
	}, nil
}

// Overviews lists all published posts.
func (s *HTTPSource) Overviews(ctx context.Context) ([]Overview, error) {
	var out []Overview
	// A missing list endpoint is a broken upstream, not a missing post.
	if err := s.getJSON(ctx, "posts", &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// BySlug fetches a single post.
func (s *HTTPSource) BySlug(ctx context.Context, slug string) (Post, error) {
	var out Post
	if err := s.getJSON(ctx, "posts/"+url.PathEscape(slug), &out, ErrNotFound); err != nil {
		return Post{}, err
	}
	return out, nil
}

// getJSON decodes rel into dst. An upstream 404 maps to notFound when it is
// non-nil and to a plain status error otherwise.
func (s *HTTPSource) getJSON(ctx context.Context, rel string, dst any, notFound error) error {
	target := s.base.String() + "/" + rel

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rel, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return notFound
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("fetch %s: upstream status %d", rel, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", rel, err)
	}
	return nil
}
