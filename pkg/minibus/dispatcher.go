// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"context"
	"errors"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/minibus/internal/log"
	"github.com/ManuGH/minibus/internal/metrics"
	"github.com/ManuGH/minibus/internal/telemetry"
)

// dispatcher is the part shared by both engines: the registry, handler
// invocation with failure isolation, and the callback protocol.
type dispatcher struct {
	name     string
	kind     string
	registry *Registry
	invoker  Invoker
	logger   zerolog.Logger
	tracer   trace.Tracer
}

func newDispatcher(kind string, o options) dispatcher {
	return dispatcher{
		name:     o.name,
		kind:     kind,
		registry: o.registry,
		invoker:  o.invoker,
		logger: o.logger.With().
			Str(log.FieldBus, o.name).
			Str(log.FieldBusKind, kind).
			Logger(),
		tracer: telemetry.Tracer(telemetry.TracerName),
	}
}

// Subscribe registers h with the bus registry.
func (d *dispatcher) Subscribe(h Handler) error {
	if err := d.registry.Subscribe(h); err != nil {
		return err
	}
	d.logger.Debug().
		Str(log.FieldEvent, "minibus.subscribed").
		Str(log.FieldHandler, handlerName(h)).
		Msg("handler subscribed")
	return nil
}

// Unsubscribe removes h from the bus registry.
func (d *dispatcher) Unsubscribe(h Handler) {
	d.registry.Unsubscribe(h)
}

// Name returns the bus name used in logs and metrics.
func (d *dispatcher) Name() string { return d.name }

// Subscribers returns the number of registry entries.
func (d *dispatcher) Subscribers() int { return d.registry.Len() }

func (d *dispatcher) reclaim() {
	n := d.registry.Reclaim()
	if n == 0 {
		return
	}
	metrics.AddReclaimed(d.name, n)
	d.logger.Debug().
		Str(log.FieldEvent, "minibus.reclaimed").
		Int(log.FieldReclaimed, n).
		Msg("collected subscribers removed")
}

// match resolves the handlers for env inside a dispatch span. The returned
// context carries the span so deliveries nest under it.
func (d *dispatcher) match(env *Envelope, queueDepth int) (context.Context, trace.Span, []Handler) {
	t := reflect.TypeOf(env.Event)
	eventType := typeName(t)
	metrics.IncPublished(d.name, eventType)

	ctx, span := d.tracer.Start(env.Context(), "minibus.dispatch",
		trace.WithSpanKind(trace.SpanKindProducer))
	handlers := d.registry.Match(t)
	span.SetAttributes(telemetry.DispatchAttributes(d.name, eventType, len(handlers), queueDepth)...)
	return ctx, span, handlers
}

// deliver runs h against env, isolating errors and panics, and fires the
// envelope callbacks.
func (d *dispatcher) deliver(ctx context.Context, env *Envelope, h Handler) {
	eventType := typeName(EventType(env.Event))
	handler := handlerName(h)

	ctx, span := d.tracer.Start(ctx, "minibus.deliver",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(telemetry.DeliveryAttributes(d.name, d.kind, eventType, handler)...))
	defer span.End()

	start := time.Now()
	err := d.invoke(ctx, h, env.Event)
	elapsed := time.Since(start)

	if err == nil {
		metrics.ObserveHandler(d.name, eventType, metrics.ResultSuccess, elapsed)
		span.SetStatus(codes.Ok, "")
		if env.OnSuccess != nil {
			d.callback(ctx, "on_success", func() { env.OnSuccess(env.Event, h) })
		}
		return
	}

	result := resultOf(err)
	metrics.ObserveHandler(d.name, eventType, result, elapsed)
	span.RecordError(err)
	span.SetAttributes(telemetry.ErrorAttributes(err, result)...)
	span.SetStatus(codes.Error, err.Error())
	d.fail(ctx, env, h, err)
}

func (d *dispatcher) invoke(ctx context.Context, h Handler, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return d.invoker.Invoke(ctx, h, evt)
}

// fail logs a handler failure and reports it to the envelope.
func (d *dispatcher) fail(ctx context.Context, env *Envelope, h Handler, err error) {
	logger := log.WithContext(ctx, d.logger)
	ev := logger.Error().
		Err(err).
		Str(log.FieldEvent, "minibus.handler_failed").
		Str(log.FieldEventType, typeName(EventType(env.Event))).
		Str(log.FieldHandler, handlerName(h))
	var perr *PanicError
	if errors.As(err, &perr) {
		ev = ev.Bytes(log.FieldStack, perr.Stack)
	}
	ev.Msg("event handler failed")

	if env.OnFailure != nil {
		d.callback(ctx, "on_failure", func() { env.OnFailure(env.Event, h, err) })
	}
}

// callback runs a user callback; its panics are logged and swallowed.
func (d *dispatcher) callback(ctx context.Context, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger := log.WithContext(ctx, d.logger)
			logger.Error().
				Str(log.FieldEvent, "minibus.callback_panic").
				Str("callback", name).
				Interface(log.FieldPanic, r).
				Bytes(log.FieldStack, debug.Stack()).
				Msg("publish callback panicked")
		}
	}()
	fn()
}

func resultOf(err error) string {
	var perr *PanicError
	if errors.As(err, &perr) {
		return metrics.ResultPanic
	}
	return metrics.ResultError
}
