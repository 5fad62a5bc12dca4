// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ManuGH/minibus/internal/config"
	"github.com/ManuGH/minibus/internal/log"
	"github.com/ManuGH/minibus/pkg/minibus"
)

// OrderPlaced is the first synthetic event kind.
type OrderPlaced struct {
	ID  string
	Seq uint64
}

// OrderCancelled is the second synthetic event kind.
type OrderCancelled struct {
	ID  string
	Seq uint64
}

var errInjected = errors.New("injected handler failure")

type counts struct {
	Published   int64
	Expected    int64
	Invocations int64
	Successes   int64
	Failures    int64
	Panics      int64
}

// harness owns the subscribed handlers. The bus holds them weakly, so the
// harness keeps them reachable for the whole run.
type harness struct {
	cfg      config.LoadConfig
	bus      minibus.Bus
	handlers []minibus.Handler
	roll     func() float64

	published   atomic.Int64
	lastPublish atomic.Int64 // unix nanos
	invocations atomic.Int64
	successes   atomic.Int64
	failures    atomic.Int64
	panics      atomic.Int64
}

func newHarness(cfg config.LoadConfig, bus minibus.Bus) *harness {
	return &harness{cfg: cfg, bus: bus, roll: rand.Float64}
}

// perEvent is the number of handlers every published event must reach:
// one typed handler set per kind plus all predicate handlers.
func (h *harness) perEvent() int64 {
	return int64(h.cfg.Handlers + h.cfg.PredicateHandlers)
}

func (h *harness) subscribe() error {
	for range h.cfg.Handlers {
		h.handlers = append(h.handlers,
			minibus.NewTypedHandler(func(context.Context, OrderPlaced) error { return h.invoke() }),
			minibus.NewTypedHandler(func(context.Context, OrderCancelled) error { return h.invoke() }),
		)
	}
	accept := minibus.Accepts(minibus.TypeOf[OrderPlaced](), minibus.TypeOf[OrderCancelled]())
	for range h.cfg.PredicateHandlers {
		h.handlers = append(h.handlers,
			minibus.NewPredicateHandler(accept, func(context.Context, minibus.Event) error { return h.invoke() }))
	}
	for _, handler := range h.handlers {
		if err := h.bus.Subscribe(handler); err != nil {
			return fmt.Errorf("subscribe handler: %w", err)
		}
	}
	return nil
}

func (h *harness) unsubscribe() {
	for _, handler := range h.handlers {
		h.bus.Unsubscribe(handler)
	}
}

func (h *harness) invoke() error {
	h.invocations.Add(1)
	r := h.roll()
	switch {
	case r < h.cfg.PanicRate:
		panic("injected handler panic")
	case r < h.cfg.PanicRate+h.cfg.FailureRate:
		return errInjected
	}
	return nil
}

func (h *harness) onSuccess(minibus.Event, minibus.Handler) {
	h.successes.Add(1)
}

func (h *harness) onFailure(_ minibus.Event, _ minibus.Handler, err error) {
	var pe *minibus.PanicError
	if errors.As(err, &pe) {
		h.panics.Add(1)
		return
	}
	h.failures.Add(1)
}

// generate publishes alternating event kinds at the configured rate until
// ctx is done.
func (h *harness) generate(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Limit(h.cfg.Rate), h.cfg.Burst)
	var seq uint64
	for {
		// Wait fails once ctx is done or its deadline cannot be met.
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}
		seq++
		id := uuid.NewString()
		var evt minibus.Event = OrderPlaced{ID: id, Seq: seq}
		if seq%2 == 0 {
			evt = OrderCancelled{ID: id, Seq: seq}
		}
		h.bus.Publish(log.ContextWithCorrelationID(ctx, id), evt,
			minibus.OnSuccess(h.onSuccess),
			minibus.OnFailure(h.onFailure),
		)
		h.published.Add(1)
		h.lastPublish.Store(time.Now().UnixNano())
	}
}

// lastPublished reports when the generator last published an event.
func (h *harness) lastPublished() time.Time {
	n := h.lastPublish.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func (h *harness) snapshot() counts {
	published := h.published.Load()
	return counts{
		Published:   published,
		Expected:    published * h.perEvent(),
		Invocations: h.invocations.Load(),
		Successes:   h.successes.Load(),
		Failures:    h.failures.Load(),
		Panics:      h.panics.Load(),
	}
}
