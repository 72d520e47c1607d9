// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package webui

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundHandler(t *testing.T) {
	h := NotFoundHandler(Config{SiteName: "Nouns"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/does/not/exist", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, `src="/images/404.png"`)
	assert.Contains(t, body, "Back to Nouns")
}

func TestNotFoundHandler_CustomImageEscaped(t *testing.T) {
	h := NotFoundHandler(Config{Image: `/img/x.png"onerror="alert(1)`})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotContains(t, rr.Body.String(), `"onerror="`)
}

func TestNotFoundHandler_Head(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFoundHandler(Config{}).ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/x", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Zero(t, rr.Body.Len())
}

func TestAssets_EmbedsNotFoundImage(t *testing.T) {
	data, err := fs.ReadFile(Assets(), "images/404.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestAssetHandler(t *testing.T) {
	h := AssetHandler(NotFoundHandler(Config{}))

	t.Run("image", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/images/404.png", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Cache-Control"), "immutable")
	})

	t.Run("directory listing denied", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/images/", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/images/nope.png", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "could not be found")
	})
}
