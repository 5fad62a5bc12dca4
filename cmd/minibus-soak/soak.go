// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/minibus/internal/api"
	"github.com/ManuGH/minibus/internal/config"
	"github.com/ManuGH/minibus/internal/health"
	"github.com/ManuGH/minibus/internal/log"
	"github.com/ManuGH/minibus/pkg/minibus"
)

// soakBus is a bus that can also report its status over HTTP.
type soakBus interface {
	minibus.Bus
	api.BusStatus
}

type closer interface {
	Close(ctx context.Context) error
}

const (
	drainPoll       = 10 * time.Millisecond
	statusRateLimit = 600 // requests per minute per client
)

// progressMaxAge tolerates ten missed publish intervals, and at least a second.
func progressMaxAge(cfg config.LoadConfig) time.Duration {
	d := time.Duration(10 * float64(time.Second) / cfg.Rate)
	return max(d, time.Second)
}

func newBus(cfg config.BusConfig) soakBus {
	opts := []minibus.Option{
		minibus.WithName(cfg.Name),
		minibus.WithLogger(log.WithComponent("minibus")),
	}
	if cfg.Kind == config.BusKindSync {
		return minibus.NewSyncBus(opts...)
	}
	return minibus.NewAsyncBus(append(opts, minibus.WithMaxWorkers(cfg.MaxWorkers))...)
}

// soak runs one full load cycle and returns the evaluated report.
func soak(ctx context.Context, cfg config.Config, runID string) Report {
	logger := log.WithComponent("soak")
	report := newReport(runID, cfg)

	bus := newBus(cfg.Bus)
	h := newHarness(cfg.Load, bus)
	if err := h.subscribe(); err != nil {
		report.finish(h.snapshot(), err)
		return report
	}
	defer h.unsubscribe()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Load.Duration)
	defer cancel()

	g, gctx := errgroup.WithContext(loadCtx)
	if cfg.Metrics.ListenAddr != "" {
		tracing := ""
		if cfg.Telemetry.Enabled {
			tracing = cfg.Log.Service
		}
		srv := api.New(api.Config{
			ListenAddr:     cfg.Metrics.ListenAddr,
			TracingService: tracing,
			RateLimit:      statusRateLimit,
			RunID:          runID,
			Checkers: []health.Checker{
				health.NewProgressChecker(h.lastPublished, progressMaxAge(cfg.Load)),
			},
		}, bus)
		g.Go(func() error { return srv.ListenAndServe(gctx) })
	}
	g.Go(func() error {
		defer cancel()
		return h.generate(gctx)
	})
	runErr := g.Wait()

	drainCtx, drainCancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Load.DrainTimeout)
	defer drainCancel()
	if err := drain(drainCtx, bus); err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "soak.drain_failed").Msg("bus did not drain in time")
		if runErr == nil {
			runErr = err
		}
	}

	report.finish(h.snapshot(), runErr)
	return report
}

// drain closes buses that support it and otherwise polls until nothing is
// pending.
func drain(ctx context.Context, bus soakBus) error {
	if c, ok := bus.(closer); ok {
		return c.Close(ctx)
	}
	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()
	for bus.HasPendingEvents() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("drain %s: %w", bus.Name(), ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}
