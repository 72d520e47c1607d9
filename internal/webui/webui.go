// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package webui serves the embedded static assets and the not-found view.
package webui

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	xglog "github.com/ManuGH/spacegate/internal/log"
)

//go:embed all:dist
var distFS embed.FS

//go:embed templates/not_found.html
var notFoundHTML string

var notFoundTmpl = template.Must(template.New("not_found").Parse(notFoundHTML))

// DefaultNotFoundImage is the image shown on the not-found view.
const DefaultNotFoundImage = "/images/404.png"

// Config configures the not-found view.
type Config struct {
	SiteName string
	Image    string // path of the image, e.g. DefaultNotFoundImage
	HomeHref string // link target for "back"
}

func (c Config) withDefaults() Config {
	if c.SiteName == "" {
		c.SiteName = "spacegate"
	}
	if c.Image == "" {
		c.Image = DefaultNotFoundImage
	}
	if c.HomeHref == "" {
		c.HomeHref = "/home"
	}
	return c
}

// Assets returns the embedded static file system rooted at dist/.
func Assets() fs.FS {
	sub, err := fs.Sub(distFS, "dist")
	if err != nil {
		// dist is embedded at build time; a failure here is a build defect.
		panic(err)
	}
	return sub
}

// AssetHandler serves embedded assets with long-lived caching.
// Directories and missing files fall through to notFound.
func AssetHandler(notFound http.Handler) http.Handler {
	assets := Assets()
	fileServer := http.FileServer(http.FS(assets))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		info, err := fs.Stat(assets, name)
		if name == "" || err != nil || info.IsDir() {
			notFound.ServeHTTP(w, r)
			return
		}

		// Assets are content-stable per build.
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fileServer.ServeHTTP(w, r)
	})
}

// NotFoundHandler renders the static not-found page with status 404.
// It holds no state beyond its configuration.
func NotFoundHandler(cfg Config) http.Handler {
	cfg = cfg.withDefaults()

	var buf bytes.Buffer
	if err := notFoundTmpl.Execute(&buf, cfg); err != nil {
		panic(err)
	}
	page := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := xglog.WithComponentFromContext(r.Context(), "webui")
		logger.Debug().
			Str(xglog.FieldEvent, "http.not_found").
			Str(xglog.FieldPath, r.URL.Path).
			Msg("no route matched")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusNotFound)
		if r.Method != http.MethodHead {
			_, _ = w.Write(page)
		}
	})
}
