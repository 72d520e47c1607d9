// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCMS(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/posts", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"slug":"hello-world","title":"Hello","publishedAt":"2025-01-02T00:00:00Z"}]`))
	})
	mux.HandleFunc("GET /v1/posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("slug") {
		case "hello-world":
			_, _ = w.Write([]byte(`{"slug":"hello-world","title":"Hello","publishedAt":"2025-01-02T00:00:00Z","content":"body","tags":["news"]}`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSource(t *testing.T) {
	srv := newCMS(t)
	src, err := NewHTTPSource(srv.URL+"/v1/", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	list, err := src.Overviews(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hello", list[0].Title)

	p, err := src.BySlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "body", p.Content)
	assert.Equal(t, []string{"news"}, p.Tags)

	_, err = src.BySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.BySlug(ctx, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream status 502")
}

func TestHTTPSource_MissingListIsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	src, err := NewHTTPSource(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = src.Overviews(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "upstream status 404")
	assert.True(t, IsUpstreamFailure(err))
}

func TestNewHTTPSource_RejectsScheme(t *testing.T) {
	_, err := NewHTTPSource("ftp://cms.example", time.Second)
	assert.Error(t, err)
}
