// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"time"

	"github.com/ManuGH/minibus/internal/telemetry"
	"github.com/ManuGH/minibus/internal/validate"
)

// Validate validates a Config using the centralized validation package
func Validate(cfg Config) error {
	v := validate.New()

	v.OneOf("bus.kind", cfg.Bus.Kind, []string{BusKindSync, BusKindAsync})
	v.NotEmpty("bus.name", cfg.Bus.Name)
	v.Range("bus.max_workers", cfg.Bus.MaxWorkers, 0, 4096)

	if _, err := validate.ParseLogLevel(cfg.Log.Level); err != nil {
		v.AddError("log.level", fmt.Sprintf("unknown level %q (must be: trace, debug, info, warn, error)", cfg.Log.Level), cfg.Log.Level)
	}

	if cfg.Metrics.ListenAddr != "" {
		v.ListenAddr("metrics.listen_addr", cfg.Metrics.ListenAddr)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{telemetry.ExporterGRPC, telemetry.ExporterHTTP})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.FloatRange("telemetry.sampling_rate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	v.FloatRange("load.rate", cfg.Load.Rate, 1, 1_000_000)
	v.Positive("load.burst", cfg.Load.Burst)
	v.MinDuration("load.duration", cfg.Load.Duration, 10*time.Millisecond)
	v.MinDuration("load.drain_timeout", cfg.Load.DrainTimeout, time.Millisecond)
	v.NonNegative("load.handlers", cfg.Load.Handlers)
	v.NonNegative("load.predicate_handlers", cfg.Load.PredicateHandlers)
	if cfg.Load.Handlers+cfg.Load.PredicateHandlers == 0 {
		v.AddError("load.handlers", "at least one typed or predicate handler is required", 0)
	}
	v.FloatRange("load.failure_rate", cfg.Load.FailureRate, 0, 1)
	v.FloatRange("load.panic_rate", cfg.Load.PanicRate, 0, 1)
	if sum := cfg.Load.FailureRate + cfg.Load.PanicRate; sum > 1 {
		v.AddError("load.panic_rate", fmt.Sprintf("failure_rate + panic_rate must not exceed 1, got %g", sum), sum)
	}

	return v.Err()
}
