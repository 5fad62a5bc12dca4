// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package main implements minibus-soak, a load harness that publishes
// synthetic events through a bus and verifies every matching handler ran.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ManuGH/minibus/internal/config"
	"github.com/ManuGH/minibus/internal/log"
	"github.com/ManuGH/minibus/internal/telemetry"
	"github.com/ManuGH/minibus/internal/version"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("minibus-soak", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	out := fs.String("out", "", "Report output path (default: stdout)")
	duration := fs.Duration("duration", 0, "Override load.duration (e.g. 5m)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "minibus-soak: %v\n", err)
		return exitUsage
	}
	if *duration > 0 {
		cfg.Load.Duration = *duration
	}

	log.Reconfigure(log.Config{
		Level:   cfg.Log.Level,
		Service: cfg.Log.Service,
		Output:  zerolog.SyncWriter(stderr),
	})
	logger := log.WithComponent("soak")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Log.Service,
		ServiceVersion: version.Version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "soak.telemetry_failed").Msg("failed to initialise telemetry")
		return exitFail
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	runID := uuid.NewString()
	logger.Info().
		Str(log.FieldEvent, "soak.start").
		Str(log.FieldRunID, runID).
		Str(log.FieldBusKind, cfg.Bus.Kind).
		Dur(log.FieldDuration, cfg.Load.Duration).
		Float64("rate", cfg.Load.Rate).
		Msg("starting soak run")

	report := soak(ctx, cfg, runID)

	if *out != "" {
		if err := writeReport(*out, report); err != nil {
			logger.Error().Err(err).Str(log.FieldPath, *out).Msg("failed to write report")
			return exitFail
		}
	} else {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logger.Error().Err(err).Msg("failed to encode report")
			return exitFail
		}
	}

	ev := logger.Info()
	if report.Summary.Verdict != verdictPass {
		ev = logger.Error().Strs("reasons", report.Summary.Reasons)
	}
	ev.Str(log.FieldEvent, "soak.done").
		Str(log.FieldRunID, runID).
		Str("verdict", report.Summary.Verdict).
		Int64("published", report.Summary.Published).
		Int64("invocations", report.Summary.Invocations).
		Msg("soak run finished")

	if report.Summary.Verdict != verdictPass {
		return exitFail
	}
	return exitPass
}
