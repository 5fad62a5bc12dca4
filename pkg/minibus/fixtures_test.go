// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ManuGH/minibus/pkg/minibus"
)

type UserCreated struct{ Name string }
type UserDeleted struct{ Name string }
type UserBanned struct{ Name string }

var errRejected = errors.New("rejected")

type recorder[E any] struct {
	minibus.Linked[E]
	name  string
	calls atomic.Int64
	err   error
	block chan struct{}
}

func (r *recorder[E]) Handle(ctx context.Context, _ minibus.Event) error {
	r.calls.Add(1)
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
		}
	}
	return r.err
}

// outcomes collects publish callbacks.
type outcomes struct {
	mu        sync.Mutex
	successes []minibus.Handler
	failures  []minibus.Handler
	errs      []error
}

func (o *outcomes) options() []minibus.PublishOption {
	return []minibus.PublishOption{
		minibus.OnSuccess(func(_ minibus.Event, h minibus.Handler) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.successes = append(o.successes, h)
		}),
		minibus.OnFailure(func(_ minibus.Event, h minibus.Handler, err error) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.failures = append(o.failures, h)
			o.errs = append(o.errs, err)
		}),
	}
}

func (o *outcomes) counts() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.successes), len(o.failures)
}

// syncBuffer is a log sink safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testLogger(w *syncBuffer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel)
}
