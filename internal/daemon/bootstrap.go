// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package daemon assembles the spacegate process and manages its lifecycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/spacegate/internal/api"
	"github.com/ManuGH/spacegate/internal/cache"
	"github.com/ManuGH/spacegate/internal/config"
	"github.com/ManuGH/spacegate/internal/health"
	xglog "github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/posts"
	"github.com/ManuGH/spacegate/internal/resilience"
	"github.com/ManuGH/spacegate/internal/telemetry"
	"github.com/ManuGH/spacegate/internal/version"
)

const (
	memoryCacheJanitorInterval = time.Minute
	cacheSizeReportInterval    = 30 * time.Second
)

// Options holds everything Bootstrap needs besides the process environment.
type Options struct {
	ConfigPath string
	Runtime    config.RuntimeConfig
	Server     config.ServerConfig
	Logger     zerolog.Logger

	// Environment replaces the process environment for the config loader
	// and the build id lookup when non-nil.
	Environment map[string]string
}

// Bootstrap wires config, cache, posts, health, tracing and the HTTP API into
// an App. Startup checks run before any listener is bound; on failure every
// resource acquired so far is released.
func Bootstrap(ctx context.Context, opts Options) (_ *App, err error) {
	logger := opts.Logger
	rt := opts.Runtime

	var cleanups []func(context.Context) error
	defer func() {
		if err == nil {
			return
		}
		for i := len(cleanups) - 1; i >= 0; i-- {
			_ = cleanups[i](context.WithoutCancel(ctx))
		}
	}()

	var loaderOpts []config.LoaderOption
	var lookupEnv func(string) (string, bool)
	if opts.Environment != nil {
		loaderOpts = append(loaderOpts, config.WithEnvironment(opts.Environment))
		lookupEnv = func(k string) (string, bool) {
			v, ok := opts.Environment[k]
			return v, ok
		}
	}
	loader := config.NewLoader(opts.ConfigPath, loaderOpts...)

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        rt.Telemetry.Enabled,
		ServiceName:    rt.LogService,
		ServiceVersion: version.Version,
		Environment:    rt.Telemetry.Environment,
		ExporterType:   rt.Telemetry.Exporter,
		Endpoint:       rt.Telemetry.Endpoint,
		SamplingRate:   rt.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	cleanups = append(cleanups, tp.Shutdown)

	c, err := newCache(ctx, rt.Redis, logger)
	if err != nil {
		return nil, err
	}
	cleanups = append(cleanups, func(context.Context) error { return c.Close() })

	var source posts.Source
	if rt.Posts.URL != "" {
		src, err := posts.NewHTTPSource(rt.Posts.URL, rt.Posts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("posts source: %w", err)
		}
		source = posts.NewBreakerSource(src, resilience.NewCircuitBreaker("posts",
			rt.Posts.BreakerThreshold, rt.Posts.BreakerReset,
			resilience.WithFailureFilter(posts.IsUpstreamFailure)))
	}
	postsSvc := posts.NewService(source, c, rt.Posts.TTL)

	hm := health.NewManager(version.Version)
	hm.RegisterChecker(health.NewConfigChecker(loader))
	cacheFailStatus := health.StatusDegraded
	if rt.Redis.Addr != "" {
		cacheFailStatus = health.StatusUnhealthy
	}
	hm.RegisterChecker(health.NewPingChecker("cache", c, cacheFailStatus))

	if err := health.PerformStartupChecks(ctx, loader, map[string]health.Pinger{"cache": c}); err != nil {
		return nil, fmt.Errorf("startup checks: %w", err)
	}

	apiServer, err := api.New(api.Deps{
		Config:    loader,
		Posts:     postsSvc,
		Health:    hm,
		Runtime:   rt,
		LookupEnv: lookupEnv,
	})
	if err != nil {
		return nil, err
	}

	mgr, err := NewManager(opts.Server, Deps{
		Logger:         logger,
		APIHandler:     apiServer.Handler(),
		MetricsHandler: promhttp.Handler(),
		MetricsAddr:    rt.MetricsListen,
	})
	if err != nil {
		return nil, err
	}

	// Registered in acquisition order; shutdown runs them in reverse.
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)
	mgr.RegisterShutdownHook("cache", func(context.Context) error { return c.Close() })

	app := NewApp(logger, mgr)
	backend := cache.Backend(c)
	app.Go(func(ctx context.Context) {
		cache.ReportSize(ctx, c, backend, cacheSizeReportInterval)
	})

	logger.Info().
		Str(xglog.FieldEvent, "daemon.bootstrapped").
		Str("cache", backend).
		Bool("posts", postsSvc.Enabled()).
		Bool("tracing", rt.Telemetry.Enabled).
		Msg("daemon assembled")
	return app, nil
}

func newCache(ctx context.Context, rt config.RedisRuntime, logger zerolog.Logger) (cache.Cache, error) {
	if rt.Addr == "" {
		return cache.NewMemoryCache(memoryCacheJanitorInterval), nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     rt.Addr,
		Password: rt.Password,
		DB:       rt.DB,
	}, logger.With().Str(xglog.FieldComponent, "cache").Logger())
	if err != nil {
		return nil, errors.Join(errCacheUnavailable, err)
	}
	return rc, nil
}
