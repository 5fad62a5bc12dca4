// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"github.com/rs/zerolog"

	"github.com/ManuGH/minibus/internal/log"
)

// Bus kinds, used as the default bus name and as the bus_kind log field.
const (
	KindSync  = "sync"
	KindAsync = "async"
)

// Option configures a bus.
type Option func(*options)

type options struct {
	logger     *zerolog.Logger
	name       string
	invoker    Invoker
	scheduler  Scheduler
	maxWorkers int
	registry   *Registry
}

// WithLogger sets the logger used for handler failures and lifecycle
// events. Defaults to the "minibus" component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

// WithName sets the bus name used in logs, metrics and spans.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithInvoker replaces DirectInvoker.
func WithInvoker(inv Invoker) Option {
	return func(o *options) {
		o.invoker = inv
	}
}

// WithScheduler replaces the AsyncBus scheduler. Ignored by SyncBus.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithMaxWorkers makes the AsyncBus run at most n handlers at once using a
// BoundedPool. Ignored by SyncBus, and when WithScheduler is also given.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.maxWorkers = n
	}
}

// WithRegistry shares an existing registry with the bus.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

func buildOptions(kind string, opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.name == "" {
		o.name = kind
	}
	if o.logger == nil {
		l := log.WithComponent("minibus")
		o.logger = &l
	}
	if o.invoker == nil {
		o.invoker = DirectInvoker
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.scheduler == nil {
		if o.maxWorkers > 0 {
			o.scheduler = NewBoundedPool(o.maxWorkers)
		} else {
			o.scheduler = ElasticPool{}
		}
	}
	return o
}
