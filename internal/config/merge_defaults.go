// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Bus: BusConfig{
			Kind: BusKindAsync,
			Name: "soak",
		},
		Log: LogConfig{
			Level:   "info",
			Service: "minibus-soak",
		},
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
			Environment:  "development",
		},
		Load: LoadConfig{
			Rate:              500,
			Burst:             50,
			Duration:          30 * time.Second,
			DrainTimeout:      30 * time.Second,
			Handlers:          2,
			PredicateHandlers: 1,
			FailureRate:       0.01,
		},
	}
}
