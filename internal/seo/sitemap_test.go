// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	out, err := Sitemap([]URL{
		{Loc: "https://space.example/home/feed"},
		{Loc: "https://space.example/posts/a&b", LastMod: time.Date(2025, 3, 4, 23, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, s, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, s, "<loc>https://space.example/home/feed</loc>")
	assert.Contains(t, s, "<loc>https://space.example/posts/a&amp;b</loc>")
	assert.Contains(t, s, "<lastmod>2025-03-04</lastmod>")
	assert.Equal(t, 1, strings.Count(s, "<lastmod>"))
}
