// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package navigation builds the site's internal link targets.
package navigation

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ManuGH/spacegate/internal/config"
)

// HomePrefix is the path of the home page; tabs live below it.
const HomePrefix = "/home"

var (
	// ErrEmptyTab is returned when a tab name is blank.
	ErrEmptyTab = errors.New("tab name is empty")
	// ErrDotSegment is returned for the tab names "." and "..".
	ErrDotSegment = errors.New("tab name is a dot segment")
)

// HomePath returns the redirect target for the bare home page:
// /home/{defaultTab} with the tab encoded as a single path segment.
func HomePath(cfg config.SystemConfig) (string, error) {
	return TabPath(cfg.HomePage.DefaultTab)
}

// TabPath returns /home/{tab} for a named tab.
func TabPath(tab string) (string, error) {
	if strings.TrimSpace(tab) == "" {
		return "", ErrEmptyTab
	}
	if tab == "." || tab == ".." {
		return "", ErrDotSegment
	}
	return HomePrefix + "/" + EncodeSegment(tab), nil
}

const upperhex = "0123456789ABCDEF"

// EncodeSegment percent-encodes s for use as one URL path segment.
// Only RFC 3986 unreserved characters pass through; a space becomes %20.
// Input is NFC-normalized first so composed and decomposed spellings of the
// same tab produce the same URL.
func EncodeSegment(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
