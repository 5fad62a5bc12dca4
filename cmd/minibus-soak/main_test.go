// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soak.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func readReport(t *testing.T, path string) Report {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var r Report
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestRun_AsyncPasses(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := writeConfig(t, `
bus:
  kind: async
  name: soak-test
  max_workers: 4
metrics:
  listen_addr: "127.0.0.1:0"
load:
  rate: 2000
  burst: 50
  duration: 150ms
  drain_timeout: 10s
  handlers: 2
  predicate_handlers: 1
  failure_rate: 0.2
  panic_rate: 0.1
`)
	out := filepath.Join(t.TempDir(), "nested", "report.json")
	var stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", cfg, "-out", out}, &bytes.Buffer{}, &stderr)
	require.Equal(t, exitPass, code, stderr.String())

	r := readReport(t, out)
	assert.Equal(t, verdictPass, r.Summary.Verdict)
	assert.Equal(t, "async", r.Bus.Kind)
	assert.Equal(t, "soak-test", r.Bus.Name)
	assert.NotEmpty(t, r.RunID)
	assert.Positive(t, r.Summary.Published)
	assert.Equal(t, r.Summary.Published*3, r.Summary.ExpectedInvocations)
	assert.Equal(t, r.Summary.ExpectedInvocations, r.Summary.Invocations)
	assert.Equal(t, r.Summary.Invocations, r.Summary.Successes+r.Summary.Failures+r.Summary.Panics)
	assert.Empty(t, r.Summary.Reasons)
}

func TestRun_SyncToStdout(t *testing.T) {
	cfg := writeConfig(t, `
bus:
  kind: sync
load:
  rate: 1000
  burst: 10
  duration: 100ms
  handlers: 1
  predicate_handlers: 2
  failure_rate: 0.5
  panic_rate: 0
`)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", cfg, "-duration", "50ms"}, &stdout, &stderr)
	require.Equal(t, exitPass, code, stderr.String())

	var r Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
	assert.Equal(t, "sync", r.Bus.Kind)
	assert.Equal(t, r.Summary.Published*3, r.Summary.Invocations)
	assert.Zero(t, r.Summary.Panics)
	assert.Less(t, r.DurationSeconds, 5.0)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "load:\n  rate: -1\n")
	var stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", cfg}, &bytes.Buffer{}, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "load.rate")
}

func TestRun_BadFlag(t *testing.T) {
	code := run(context.Background(), []string{"-nope"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, exitUsage, code)
}

func TestRun_ListenFailureFails(t *testing.T) {
	cfg := writeConfig(t, `
metrics:
  listen_addr: "203.0.113.1:1"
load:
  duration: 100ms
`)
	out := filepath.Join(t.TempDir(), "report.json")

	code := run(context.Background(), []string{"-config", cfg, "-out", out}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, exitFail, code)

	r := readReport(t, out)
	assert.Equal(t, verdictFail, r.Summary.Verdict)
	assert.NotEmpty(t, r.Summary.Reasons)
}
