// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/telemetry"
)

// Tracing wraps requests in OpenTelemetry server spans. Spans start as
// "HTTP {METHOD}" and are renamed to "{METHOD} {route}" once chi has routed,
// so raw paths never become span names.
//
// otelhttp re-applies the span name formatter after the handler whenever the
// router set r.Pattern, so the formatter itself must be route aware.
func Tracing(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		annotate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span := trace.SpanFromContext(r.Context())
			if reqID := log.RequestIDFromContext(r.Context()); reqID != "" {
				span.SetAttributes(attribute.String(telemetry.HTTPRequestIDKey, reqID))
			}

			next.ServeHTTP(w, r)

			if route := RoutePattern(r); route != "" {
				span.SetName(r.Method + " " + route)
				span.SetAttributes(attribute.String(telemetry.HTTPRouteKey, route))
			}
		})

		return otelhttp.NewHandler(annotate, serviceName,
			otelhttp.WithFilter(shouldTrace),
			otelhttp.WithSpanNameFormatter(spanNameFormatter),
		)
	}
}

// shouldTrace skips probe endpoints to reduce noise.
func shouldTrace(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/readyz", "/metrics":
		return false
	}
	return true
}

func spanNameFormatter(_ string, r *http.Request) string {
	if route := RoutePattern(r); route != "" {
		return r.Method + " " + route
	}
	return "HTTP " + r.Method
}
