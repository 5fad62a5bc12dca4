// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// mergeFileConfig applies every field the file sets.
func mergeFileConfig(dst *Config, src *FileConfig) {
	if src == nil {
		return
	}
	if b := src.Bus; b != nil {
		setIf(&dst.Bus.Kind, b.Kind)
		setIf(&dst.Bus.Name, b.Name)
		setIf(&dst.Bus.MaxWorkers, b.MaxWorkers)
	}
	if l := src.Log; l != nil {
		setIf(&dst.Log.Level, l.Level)
		setIf(&dst.Log.Service, l.Service)
	}
	if m := src.Metrics; m != nil {
		setIf(&dst.Metrics.ListenAddr, m.ListenAddr)
	}
	if t := src.Telemetry; t != nil {
		setIf(&dst.Telemetry.Enabled, t.Enabled)
		setIf(&dst.Telemetry.Exporter, t.Exporter)
		setIf(&dst.Telemetry.Endpoint, t.Endpoint)
		setIf(&dst.Telemetry.SamplingRate, t.SamplingRate)
		setIf(&dst.Telemetry.Environment, t.Environment)
	}
	if l := src.Load; l != nil {
		setIf(&dst.Load.Rate, l.Rate)
		setIf(&dst.Load.Burst, l.Burst)
		setIf(&dst.Load.Duration, l.Duration)
		setIf(&dst.Load.DrainTimeout, l.DrainTimeout)
		setIf(&dst.Load.Handlers, l.Handlers)
		setIf(&dst.Load.PredicateHandlers, l.PredicateHandlers)
		setIf(&dst.Load.FailureRate, l.FailureRate)
		setIf(&dst.Load.PanicRate, l.PanicRate)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
