// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command daemon runs the spacegate HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ManuGH/spacegate/internal/config"
	"github.com/ManuGH/spacegate/internal/daemon"
	xglog "github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Safe defaults until the runtime config is parsed.
	xglog.Configure(xglog.Config{
		Level:   "info",
		Service: "spacegate",
		Version: version.Version,
	})
	logger := xglog.WithComponent("daemon")

	rt, err := config.LoadRuntime()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "config.runtime_failed").
			Msg("invalid runtime environment")
	}

	xglog.Configure(xglog.Config{
		Level:   rt.LogLevel,
		Service: rt.LogService,
		Version: version.Version,
	})
	logger = xglog.WithComponent("daemon")

	path := resolveConfigPath(*configPath)
	logger.Info().
		Str(xglog.FieldEvent, "daemon.start").
		Str(xglog.FieldVersion, version.Version).
		Str(xglog.FieldConfigPath, path).
		Msg("starting spacegate")

	ctx := context.Background()
	app, err := daemon.Bootstrap(ctx, daemon.Options{
		ConfigPath: path,
		Runtime:    rt,
		Server:     config.ParseServerConfig(),
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "daemon.bootstrap_failed").
			Str(xglog.FieldConfigPath, path).
			Msg("failed to start")
	}

	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "daemon.exit").Msg("daemon exited with error")
		os.Exit(1)
	}
	logger.Info().Str(xglog.FieldEvent, "daemon.exit").Msg("daemon stopped")
}

// resolveConfigPath prefers an explicit --config, then SPACEGATE_CONFIG.
// Empty means defaults and environment only.
func resolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(config.ParseString("SPACEGATE_CONFIG", ""))
}
