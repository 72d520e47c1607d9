// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestHTTPAttributes(t *testing.T) {
	m := attrMap(HTTPAttributes("GET", "/api/posts/{slug}", "/api/posts/hello", 200))

	assert.Len(t, m, 4)
	assert.Equal(t, "GET", m[HTTPMethodKey].AsString())
	assert.Equal(t, "/api/posts/{slug}", m[HTTPRouteKey].AsString())
	assert.Equal(t, "/api/posts/hello", m[HTTPURLKey].AsString())
	assert.Equal(t, int64(200), m[HTTPStatusCodeKey].AsInt64())
}

func TestCacheAttributes(t *testing.T) {
	m := attrMap(CacheAttributes("posts:overviews", true))
	assert.Equal(t, "posts:overviews", m[CacheKeyKey].AsString())
	assert.True(t, m[CacheHitKey].AsBool())

	m = attrMap(InvalidationAttributes([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, m[CacheTagsKey].AsStringSlice())
}

func TestErrorAttributes(t *testing.T) {
	m := attrMap(ErrorAttributes("upstream"))
	assert.True(t, m[ErrorKey].AsBool())
	assert.Equal(t, "upstream", m[ErrorTypeKey].AsString())
}
