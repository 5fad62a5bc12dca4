// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// Environment keys.
const (
	EnvBusKind               = "MINIBUS_BUS_KIND"
	EnvBusName               = "MINIBUS_BUS_NAME"
	EnvBusMaxWorkers         = "MINIBUS_BUS_MAX_WORKERS"
	EnvLogLevel              = "MINIBUS_LOG_LEVEL"
	EnvLogService            = "MINIBUS_LOG_SERVICE"
	EnvMetricsListenAddr     = "MINIBUS_METRICS_LISTEN_ADDR"
	EnvTelemetryEnabled      = "MINIBUS_TELEMETRY_ENABLED"
	EnvTelemetryExporter     = "MINIBUS_TELEMETRY_EXPORTER"
	EnvTelemetryEndpoint     = "MINIBUS_TELEMETRY_ENDPOINT"
	EnvTelemetrySamplingRate = "MINIBUS_TELEMETRY_SAMPLING_RATE"
	EnvTelemetryEnvironment  = "MINIBUS_TELEMETRY_ENVIRONMENT"
	EnvLoadRate              = "MINIBUS_LOAD_RATE"
	EnvLoadBurst             = "MINIBUS_LOAD_BURST"
	EnvLoadDuration          = "MINIBUS_LOAD_DURATION"
	EnvLoadDrainTimeout      = "MINIBUS_LOAD_DRAIN_TIMEOUT"
	EnvLoadHandlers          = "MINIBUS_LOAD_HANDLERS"
	EnvLoadPredicateHandlers = "MINIBUS_LOAD_PREDICATE_HANDLERS"
	EnvLoadFailureRate       = "MINIBUS_LOAD_FAILURE_RATE"
	EnvLoadPanicRate         = "MINIBUS_LOAD_PANIC_RATE"
)

// mergeEnvConfig overrides cfg with every MINIBUS_* variable that is set.
func (l *Loader) mergeEnvConfig(cfg *Config) {
	cfg.Bus.Kind = l.envString(EnvBusKind, cfg.Bus.Kind)
	cfg.Bus.Name = l.envString(EnvBusName, cfg.Bus.Name)
	cfg.Bus.MaxWorkers = l.envInt(EnvBusMaxWorkers, cfg.Bus.MaxWorkers)

	cfg.Log.Level = l.envString(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Service = l.envString(EnvLogService, cfg.Log.Service)

	cfg.Metrics.ListenAddr = l.envString(EnvMetricsListenAddr, cfg.Metrics.ListenAddr)

	cfg.Telemetry.Enabled = l.envBool(EnvTelemetryEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString(EnvTelemetryExporter, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString(EnvTelemetryEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = l.envFloat(EnvTelemetrySamplingRate, cfg.Telemetry.SamplingRate)
	cfg.Telemetry.Environment = l.envString(EnvTelemetryEnvironment, cfg.Telemetry.Environment)

	cfg.Load.Rate = l.envFloat(EnvLoadRate, cfg.Load.Rate)
	cfg.Load.Burst = l.envInt(EnvLoadBurst, cfg.Load.Burst)
	cfg.Load.Duration = l.envDuration(EnvLoadDuration, cfg.Load.Duration)
	cfg.Load.DrainTimeout = l.envDuration(EnvLoadDrainTimeout, cfg.Load.DrainTimeout)
	cfg.Load.Handlers = l.envInt(EnvLoadHandlers, cfg.Load.Handlers)
	cfg.Load.PredicateHandlers = l.envInt(EnvLoadPredicateHandlers, cfg.Load.PredicateHandlers)
	cfg.Load.FailureRate = l.envFloat(EnvLoadFailureRate, cfg.Load.FailureRate)
	cfg.Load.PanicRate = l.envFloat(EnvLoadPanicRate, cfg.Load.PanicRate)
}
