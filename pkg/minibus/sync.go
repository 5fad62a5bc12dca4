// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"context"
	"sync/atomic"
)

// SyncBus delivers events inline: Publish returns after every matched
// handler has run on the calling goroutine, in match order.
type SyncBus struct {
	dispatcher
	inflight atomic.Int64
}

// NewSyncBus returns a synchronous bus. WithScheduler and WithMaxWorkers
// have no effect on it.
func NewSyncBus(opts ...Option) *SyncBus {
	o := buildOptions(KindSync, opts)
	return &SyncBus{dispatcher: newDispatcher(KindSync, o)}
}

// Publish implements Bus.
func (b *SyncBus) Publish(ctx context.Context, evt Event, opts ...PublishOption) {
	if isAbsent(evt) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	b.inflight.Add(1)
	defer b.inflight.Add(-1)

	b.reclaim()
	env := newEnvelope(ctx, evt, opts)
	ctx, span, handlers := b.match(env, 0)
	defer span.End()

	for _, h := range handlers {
		b.deliver(ctx, env, h)
	}
}

// HasPendingEvents reports whether a Publish call is in progress. Handlers
// that publish re-entrantly observe true.
func (b *SyncBus) HasPendingEvents() bool {
	return b.inflight.Load() > 0
}
