// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"context"
	"fmt"
	"reflect"
)

// Handler is a unit of work bound to one event type or to a predicate.
//
// LinkedType returns the exact event type the handler accepts. A nil result
// requests predicate routing: the handler is then offered every event type
// and CanHandle decides. CanHandle is never consulted for linked handlers.
type Handler interface {
	LinkedType() reflect.Type
	CanHandle(t reflect.Type) bool
	Handle(ctx context.Context, evt Event) error
}

// Linked can be embedded in a handler struct to bind it to event type E.
type Linked[E any] struct{}

// LinkedType implements Handler.
func (Linked[E]) LinkedType() reflect.Type { return TypeOf[E]() }

// CanHandle implements Handler. Linked handlers are routed by type only.
func (Linked[E]) CanHandle(reflect.Type) bool { return false }

// TypedHandler adapts a function over E into a linked Handler.
type TypedHandler[E any] struct {
	Linked[E]
	fn func(context.Context, E) error
}

// NewTypedHandler returns a handler that receives events of exactly type E.
func NewTypedHandler[E any](fn func(ctx context.Context, evt E) error) *TypedHandler[E] {
	return &TypedHandler[E]{fn: fn}
}

// Handle implements Handler.
func (h *TypedHandler[E]) Handle(ctx context.Context, evt Event) error {
	e, ok := evt.(E)
	if !ok {
		return fmt.Errorf("minibus: %T delivered to handler for %s", evt, TypeOf[E]())
	}
	if h.fn == nil {
		return nil
	}
	return h.fn(ctx, e)
}

// PredicateHandler adapts an acceptance predicate and a function into a
// catch-all Handler.
type PredicateHandler struct {
	accept func(reflect.Type) bool
	fn     func(context.Context, Event) error
}

// NewPredicateHandler returns a handler offered every event type accept
// returns true for. A nil accept matches nothing.
func NewPredicateHandler(accept func(reflect.Type) bool, fn func(ctx context.Context, evt Event) error) *PredicateHandler {
	return &PredicateHandler{accept: accept, fn: fn}
}

// LinkedType implements Handler.
func (*PredicateHandler) LinkedType() reflect.Type { return nil }

// CanHandle implements Handler.
func (h *PredicateHandler) CanHandle(t reflect.Type) bool {
	return h.accept != nil && h.accept(t)
}

// Handle implements Handler.
func (h *PredicateHandler) Handle(ctx context.Context, evt Event) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(ctx, evt)
}

// Accepts builds a predicate matching exactly the given event types.
func Accepts(types ...reflect.Type) func(reflect.Type) bool {
	set := make(map[reflect.Type]struct{}, len(types))
	for _, t := range types {
		if t != nil {
			set[t] = struct{}{}
		}
	}
	return func(t reflect.Type) bool {
		_, ok := set[t]
		return ok
	}
}

func handlerName(h Handler) string {
	return fmt.Sprintf("%T", h)
}
