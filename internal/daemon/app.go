// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	xglog "github.com/ManuGH/spacegate/internal/log"
)

// App owns the process lifecycle (signals, background loops) and delegates
// server management to Manager.
type App struct {
	logger  zerolog.Logger
	manager Manager
	signals []os.Signal

	// background runs alongside the servers until ctx ends.
	background []func(ctx context.Context)
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager) *App {
	return &App{
		logger:  logger,
		manager: manager,
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// Manager returns the managed server lifecycle, for registering hooks.
func (a *App) Manager() Manager {
	return a.manager
}

// Go registers fn to run for the lifetime of Run.
func (a *App) Go(fn func(ctx context.Context)) {
	a.background = append(a.background, fn)
}

// Run blocks until ctx is cancelled, a termination signal arrives, or a
// server fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	if len(a.signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, a.signals...)
		defer stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, fn := range a.background {
		g.Go(func() error {
			fn(gctx)
			return nil
		})
	}

	g.Go(func() error {
		err := a.manager.Start(gctx)
		if err != nil {
			a.logger.Error().Err(err).Str(xglog.FieldEvent, "daemon.failed").Msg("daemon stopped with error")
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}
