// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package seo renders crawler-facing documents.
package seo

import (
	"strings"
)

// Rule is one User-Agent block of a robots.txt file.
type Rule struct {
	UserAgent string
	Allow     []string
	Disallow  []string
}

// Robots describes a robots.txt document.
type Robots struct {
	Rules   []Rule
	Sitemap string
}

// DefaultRobots returns the site policy: everything is crawlable except the
// API, and the sitemap lives at {siteURL}/sitemap.xml.
func DefaultRobots(siteURL string) Robots {
	return Robots{
		Rules: []Rule{{
			UserAgent: "*",
			Allow:     []string{"/"},
			Disallow:  []string{"/api"},
		}},
		Sitemap: SitemapURL(siteURL),
	}
}

// SitemapURL joins siteURL and /sitemap.xml without doubling slashes.
func SitemapURL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + "/sitemap.xml"
}

// String renders the document in robots.txt syntax.
func (r Robots) String() string {
	var b strings.Builder
	for i, rule := range r.Rules {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("User-Agent: " + rule.UserAgent + "\n")
		for _, p := range rule.Allow {
			b.WriteString("Allow: " + p + "\n")
		}
		for _, p := range rule.Disallow {
			b.WriteString("Disallow: " + p + "\n")
		}
	}
	if r.Sitemap != "" {
		b.WriteString("\nSitemap: " + r.Sitemap + "\n")
	}
	return b.String()
}
