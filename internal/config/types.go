// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// Bus kinds accepted by bus.kind.
const (
	BusKindSync  = "sync"
	BusKindAsync = "async"
)

// Config is the effective configuration after defaults, file and
// environment have been merged.
type Config struct {
	Bus       BusConfig       `json:"bus"`
	Log       LogConfig       `json:"log"`
	Metrics   MetricsConfig   `json:"metrics"`
	Telemetry TelemetryConfig `json:"telemetry"`
	Load      LoadConfig      `json:"load"`
}

// BusConfig selects and tunes the bus under test.
type BusConfig struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	MaxWorkers int    `json:"maxWorkers"` // 0 = elastic pool
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level   string `json:"level"`
	Service string `json:"service"`
}

// MetricsConfig configures the metrics HTTP endpoint. An empty ListenAddr
// disables the server.
type MetricsConfig struct {
	ListenAddr string `json:"listenAddr"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `json:"enabled"`
	Exporter     string  `json:"exporter"`
	Endpoint     string  `json:"endpoint"`
	SamplingRate float64 `json:"samplingRate"`
	Environment  string  `json:"environment"`
}

// LoadConfig shapes the synthetic load.
type LoadConfig struct {
	Rate              float64       `json:"rate"` // events per second
	Burst             int           `json:"burst"`
	Duration          time.Duration `json:"duration"`
	DrainTimeout      time.Duration `json:"drainTimeout"`
	Handlers          int           `json:"handlers"`          // typed handlers per event kind
	PredicateHandlers int           `json:"predicateHandlers"` // catch-all handlers
	FailureRate       float64       `json:"failureRate"`
	PanicRate         float64       `json:"panicRate"`
}

// FileConfig is the YAML schema. Pointer fields distinguish "unset" from
// zero values so the file only overrides what it names.
type FileConfig struct {
	Bus       *BusFileConfig       `yaml:"bus,omitempty"`
	Log       *LogFileConfig       `yaml:"log,omitempty"`
	Metrics   *MetricsFileConfig   `yaml:"metrics,omitempty"`
	Telemetry *TelemetryFileConfig `yaml:"telemetry,omitempty"`
	Load      *LoadFileConfig      `yaml:"load,omitempty"`
}

type BusFileConfig struct {
	Kind       *string `yaml:"kind,omitempty"`
	Name       *string `yaml:"name,omitempty"`
	MaxWorkers *int    `yaml:"max_workers,omitempty"`
}

type LogFileConfig struct {
	Level   *string `yaml:"level,omitempty"`
	Service *string `yaml:"service,omitempty"`
}

type MetricsFileConfig struct {
	ListenAddr *string `yaml:"listen_addr,omitempty"`
}

type TelemetryFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     *string  `yaml:"exporter,omitempty"`
	Endpoint     *string  `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"sampling_rate,omitempty"`
	Environment  *string  `yaml:"environment,omitempty"`
}

type LoadFileConfig struct {
	Rate              *float64       `yaml:"rate,omitempty"`
	Burst             *int           `yaml:"burst,omitempty"`
	Duration          *time.Duration `yaml:"duration,omitempty"`
	DrainTimeout      *time.Duration `yaml:"drain_timeout,omitempty"`
	Handlers          *int           `yaml:"handlers,omitempty"`
	PredicateHandlers *int           `yaml:"predicate_handlers,omitempty"`
	FailureRate       *float64       `yaml:"failure_rate,omitempty"`
	PanicRate         *float64       `yaml:"panic_rate,omitempty"`
}
