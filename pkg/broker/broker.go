// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package broker provides a name-keyed facade over a minibus.Bus for
// applications that want one shared bus and string handles for their
// subscriptions.
package broker

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ManuGH/minibus/internal/log"
	"github.com/ManuGH/minibus/pkg/minibus"
)

// ErrEmptyName is returned when registering a handler without a name.
var ErrEmptyName = errors.New("broker: empty handler name")

type closer interface {
	Close(ctx context.Context) error
}

// Broker registers handlers under names. It keeps a strong reference to
// every registered handler, so they stay subscribed until Unregister.
type Broker struct {
	bus    minibus.Bus
	logger zerolog.Logger

	mu       sync.Mutex
	handlers map[string]minibus.Handler
}

// New returns a broker over bus. A nil bus gets a new AsyncBus.
func New(bus minibus.Bus) *Broker {
	if bus == nil {
		bus = minibus.NewAsyncBus(minibus.WithName("broker"))
	}
	return &Broker{
		bus:      bus,
		logger:   log.WithComponent("broker"),
		handlers: make(map[string]minibus.Handler),
	}
}

// Register subscribes h under name. It reports false, and leaves the
// existing subscription in place, if name is already registered.
func (b *Broker) Register(name string, h minibus.Handler) (bool, error) {
	if name == "" {
		return false, ErrEmptyName
	}
	if h == nil {
		return false, minibus.ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handlers[name]; ok {
		return false, nil
	}
	if err := b.bus.Subscribe(h); err != nil {
		return false, err
	}
	b.handlers[name] = h
	b.logger.Debug().
		Str(log.FieldEvent, "broker.registered").
		Str(log.FieldName, name).
		Msg("handler registered")
	return true, nil
}

// Subscribe registers fn under name as a handler for events of type E.
func Subscribe[E any](b *Broker, name string, fn func(ctx context.Context, evt E) error) (bool, error) {
	return b.Register(name, minibus.NewTypedHandler(fn))
}

// Unregister unsubscribes the handler registered under name and reports
// whether there was one.
func (b *Broker) Unregister(name string) bool {
	b.mu.Lock()
	h, ok := b.handlers[name]
	delete(b.handlers, name)
	b.mu.Unlock()

	if !ok {
		return false
	}
	b.bus.Unsubscribe(h)
	b.logger.Debug().
		Str(log.FieldEvent, "broker.unregistered").
		Str(log.FieldName, name).
		Msg("handler unregistered")
	return true
}

// Registered reports whether name is registered.
func (b *Broker) Registered(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.handlers[name]
	return ok
}

// Names returns the registered names in sorted order.
func (b *Broker) Names() []string {
	b.mu.Lock()
	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	b.mu.Unlock()
	sort.Strings(names)
	return names
}

// Publish publishes evt on the underlying bus.
func (b *Broker) Publish(ctx context.Context, evt minibus.Event, opts ...minibus.PublishOption) {
	b.bus.Publish(ctx, evt, opts...)
}

// HasPendingEvents reports the underlying bus state.
func (b *Broker) HasPendingEvents() bool {
	return b.bus.HasPendingEvents()
}

// Bus returns the underlying bus.
func (b *Broker) Bus() minibus.Bus {
	return b.bus
}

// Close unregisters every handler and closes the bus when it supports
// closing.
func (b *Broker) Close(ctx context.Context) error {
	for _, name := range b.Names() {
		b.Unregister(name)
	}
	if c, ok := b.bus.(closer); ok {
		return c.Close(ctx)
	}
	return nil
}
