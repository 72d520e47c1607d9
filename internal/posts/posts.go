// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package posts serves blog posts from an upstream CMS through the tag cache.
package posts

import (
	"errors"
	"time"
)

// Cache tags for post entries. The revalidation endpoint invalidates both.
const (
	TagPostsBySlug   = "get-posts-by-slug"
	TagPostOverviews = "get-post-overviews"
)

var (
	// ErrNotFound is returned for an unknown slug.
	ErrNotFound = errors.New("post not found")

	// ErrDisabled is returned when no upstream source is configured.
	ErrDisabled = errors.New("posts source not configured")

	// ErrInvalidSlug is returned for slugs that cannot name a post.
	ErrInvalidSlug = errors.New("invalid post slug")
)

// Overview is the list form of a post.
type Overview struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Post is a full post.
type Post struct {
	Overview
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}
