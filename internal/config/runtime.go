// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ManuGH/spacegate/internal/validate"
)

// RuntimeConfig holds the ambient, environment-only settings of the daemon.
// Unlike SystemConfig it carries no per-deployment content.
type RuntimeConfig struct {
	LogLevel   string `env:"SPACEGATE_LOG_LEVEL" envDefault:"info"`
	LogService string `env:"SPACEGATE_LOG_SERVICE" envDefault:"spacegate"`

	// BuildIDEnv names the variable /api/buildId reports at request time.
	BuildIDEnv string `env:"SPACEGATE_BUILD_ID_ENV" envDefault:"VERSION"`

	// NotFoundImage is the image referenced by the 404 view.
	NotFoundImage string `env:"SPACEGATE_NOT_FOUND_IMAGE" envDefault:"/images/404.png"`

	// MetricsListen enables the Prometheus listener when set (e.g. ":9090").
	MetricsListen string `env:"SPACEGATE_METRICS_LISTEN"`

	CORSOrigins []string `env:"SPACEGATE_CORS_ORIGINS" envSeparator:","`

	Redis     RedisRuntime     `envPrefix:"SPACEGATE_REDIS_"`
	Posts     PostsRuntime     `envPrefix:"SPACEGATE_POSTS_"`
	Telemetry TelemetryRuntime `envPrefix:"SPACEGATE_OTEL_"`
	RateLimit RateLimitRuntime `envPrefix:"SPACEGATE_RATELIMIT_"`
}

// RedisRuntime configures the shared tag cache. An empty Addr selects the
// in-memory cache.
type RedisRuntime struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// PostsRuntime configures the upstream blog/CMS source.
// An empty URL disables the posts endpoints.
type PostsRuntime struct {
	URL     string        `env:"URL"`
	TTL     time.Duration `env:"TTL" envDefault:"10m"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// The upstream breaker opens after BreakerThreshold consecutive failures
	// and probes again after BreakerReset.
	BreakerThreshold int           `env:"BREAKER_THRESHOLD" envDefault:"5"`
	BreakerReset     time.Duration `env:"BREAKER_RESET" envDefault:"30s"`
}

// TelemetryRuntime configures OpenTelemetry tracing.
type TelemetryRuntime struct {
	Enabled      bool    `env:"ENABLED" envDefault:"false"`
	Exporter     string  `env:"EXPORTER" envDefault:"http"`
	Endpoint     string  `env:"ENDPOINT" envDefault:"localhost:4318"`
	Environment  string  `env:"ENVIRONMENT" envDefault:"production"`
	SamplingRate float64 `env:"SAMPLING_RATE" envDefault:"1.0"`
}

// RateLimitRuntime configures the per-IP limit on /api routes.
type RateLimitRuntime struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Requests int           `env:"REQUESTS" envDefault:"600"`
	Window   time.Duration `env:"WINDOW" envDefault:"1m"`
}

// LoadRuntime parses RuntimeConfig from the process environment.
func LoadRuntime() (RuntimeConfig, error) {
	return loadRuntime(env.Options{})
}

// LoadRuntimeFrom parses RuntimeConfig from environ instead of the process environment.
func LoadRuntimeFrom(environ map[string]string) (RuntimeConfig, error) {
	return loadRuntime(env.Options{Environment: environ})
}

func loadRuntime(opts env.Options) (RuntimeConfig, error) {
	var rt RuntimeConfig
	if err := env.ParseWithOptions(&rt, opts); err != nil {
		return RuntimeConfig{}, &ConfigurationError{Err: fmt.Errorf("parse runtime env: %w", err)}
	}
	if err := ValidateRuntime(rt); err != nil {
		return RuntimeConfig{}, &ConfigurationError{Err: err}
	}
	return rt, nil
}

// ValidateRuntime checks the ambient settings.
func ValidateRuntime(rt RuntimeConfig) error {
	v := validate.New()

	if _, err := validate.ParseLogLevel(rt.LogLevel); err != nil {
		v.AddError("SPACEGATE_LOG_LEVEL", "must be debug, info, warn or error", rt.LogLevel)
	}
	v.NotEmpty("SPACEGATE_BUILD_ID_ENV", rt.BuildIDEnv)
	v.NotEmpty("SPACEGATE_NOT_FOUND_IMAGE", rt.NotFoundImage)
	v.NonNegative("SPACEGATE_REDIS_DB", rt.Redis.DB)
	if rt.MetricsListen != "" {
		validateListenAddr(v, "SPACEGATE_METRICS_LISTEN", rt.MetricsListen)
	}

	if rt.Posts.URL != "" {
		v.URL("SPACEGATE_POSTS_URL", rt.Posts.URL, []string{"http", "https"})
		if rt.Posts.TTL <= 0 {
			v.AddError("SPACEGATE_POSTS_TTL", "must be > 0", rt.Posts.TTL)
		}
		if rt.Posts.Timeout <= 0 {
			v.AddError("SPACEGATE_POSTS_TIMEOUT", "must be > 0", rt.Posts.Timeout)
		}
		v.Positive("SPACEGATE_POSTS_BREAKER_THRESHOLD", rt.Posts.BreakerThreshold)
		if rt.Posts.BreakerReset <= 0 {
			v.AddError("SPACEGATE_POSTS_BREAKER_RESET", "must be > 0", rt.Posts.BreakerReset)
		}
	}

	if rt.Telemetry.Enabled {
		v.OneOf("SPACEGATE_OTEL_EXPORTER", rt.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("SPACEGATE_OTEL_ENDPOINT", rt.Telemetry.Endpoint)
	}

	if rt.RateLimit.Enabled {
		v.Positive("SPACEGATE_RATELIMIT_REQUESTS", rt.RateLimit.Requests)
		if rt.RateLimit.Window <= 0 {
			v.AddError("SPACEGATE_RATELIMIT_WINDOW", "must be > 0", rt.RateLimit.Window)
		}
	}

	if !v.IsValid() {
		return v.Err()
	}
	return nil
}

func validateListenAddr(v *validate.Validator, field, addr string) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid listen address: %v", err), addr)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid port %q", portStr), addr)
		return
	}
	v.Port(field, port)
}
