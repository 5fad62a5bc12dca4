// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/minibus/internal/config"
	"github.com/ManuGH/minibus/internal/version"
)

const (
	verdictPass = "PASS"
	verdictFail = "FAIL"
)

// Report is the JSON output schema for soak results.
type Report struct {
	RunID           string      `json:"run_id"`
	Version         string      `json:"version"`
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         time.Time   `json:"ended_at"`
	DurationSeconds float64     `json:"duration_s"`
	Bus             BusSummary  `json:"bus"`
	Load            LoadSummary `json:"load"`
	Summary         Summary     `json:"summary"`
}

// BusSummary records the bus under test.
type BusSummary struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	MaxWorkers int    `json:"max_workers"`
}

// LoadSummary records the load shape.
type LoadSummary struct {
	Rate              float64 `json:"rate"`
	Burst             int     `json:"burst"`
	Handlers          int     `json:"handlers"`
	PredicateHandlers int     `json:"predicate_handlers"`
	FailureRate       float64 `json:"failure_rate"`
	PanicRate         float64 `json:"panic_rate"`
}

// Summary provides the counters and the aggregate verdict.
type Summary struct {
	Published           int64    `json:"published"`
	ExpectedInvocations int64    `json:"expected_invocations"`
	Invocations         int64    `json:"invocations"`
	Successes           int64    `json:"successes"`
	Failures            int64    `json:"failures"`
	Panics              int64    `json:"panics"`
	Reasons             []string `json:"reasons,omitempty"`
	Verdict             string   `json:"verdict"`
}

func newReport(runID string, cfg config.Config) Report {
	return Report{
		RunID:     runID,
		Version:   version.Version,
		StartedAt: time.Now().UTC(),
		Bus: BusSummary{
			Kind:       cfg.Bus.Kind,
			Name:       cfg.Bus.Name,
			MaxWorkers: cfg.Bus.MaxWorkers,
		},
		Load: LoadSummary{
			Rate:              cfg.Load.Rate,
			Burst:             cfg.Load.Burst,
			Handlers:          cfg.Load.Handlers,
			PredicateHandlers: cfg.Load.PredicateHandlers,
			FailureRate:       cfg.Load.FailureRate,
			PanicRate:         cfg.Load.PanicRate,
		},
	}
}

// finish stamps the end time and evaluates the verdict.
func (r *Report) finish(c counts, runErr error) {
	r.EndedAt = time.Now().UTC()
	r.DurationSeconds = r.EndedAt.Sub(r.StartedAt).Seconds()
	r.Summary = Summary{
		Published:           c.Published,
		ExpectedInvocations: c.Expected,
		Invocations:         c.Invocations,
		Successes:           c.Successes,
		Failures:            c.Failures,
		Panics:              c.Panics,
	}

	var reasons []string
	if runErr != nil {
		reasons = append(reasons, runErr.Error())
	}
	if c.Published == 0 {
		reasons = append(reasons, "no events published")
	}
	if c.Invocations != c.Expected {
		reasons = append(reasons, fmt.Sprintf("invocations=%d, expected %d", c.Invocations, c.Expected))
	}
	if outcomes := c.Successes + c.Failures + c.Panics; outcomes != c.Expected {
		reasons = append(reasons, fmt.Sprintf("outcomes=%d, expected %d", outcomes, c.Expected))
	}
	r.Summary.Reasons = reasons
	r.Summary.Verdict = verdictPass
	if len(reasons) > 0 {
		r.Summary.Verdict = verdictFail
	}
}

// writeReport writes the report with atomic replace semantics.
func writeReport(path string, report Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending report file: %w", err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := pendingFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace report: %w", err)
	}
	return nil
}
