// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
)

type kindOne struct{ ID int }
type kindTwo struct{ ID int }
type kindThree struct{ ID int }

// counter is a linked handler with a pointer field so it is never placed
// in a tiny allocation block, which would delay collection.
type counter[E any] struct {
	Linked[E]
	label string
	calls atomic.Int64
	err   error
}

func (c *counter[E]) Handle(context.Context, Event) error {
	c.calls.Add(1)
	return c.err
}

type catchAll struct {
	label  string
	accept func(reflect.Type) bool
	calls  atomic.Int64
	panics bool
}

func (*catchAll) LinkedType() reflect.Type { return nil }

func (c *catchAll) CanHandle(t reflect.Type) bool { return c.accept(t) }

func (c *catchAll) Handle(context.Context, Event) error {
	c.calls.Add(1)
	if c.panics {
		panic(errors.New(c.label + " exploded"))
	}
	return nil
}

// valueHandler is held strongly and identified by value.
type valueHandler struct {
	Linked[kindTwo]
	id int
}

func (valueHandler) Handle(context.Context, Event) error { return nil }

// nanHandler is comparable but never equal to itself.
type nanHandler struct {
	Linked[kindOne]
	f float64
}

func (nanHandler) Handle(context.Context, Event) error { return nil }

// funcHandler has no identity.
type funcHandler func(context.Context, Event) error

func (funcHandler) LinkedType() reflect.Type                    { return TypeOf[kindOne]() }
func (funcHandler) CanHandle(reflect.Type) bool                 { return false }
func (f funcHandler) Handle(ctx context.Context, e Event) error { return f(ctx, e) }

type zeroSize struct {
	Linked[kindOne]
}

func (*zeroSize) Handle(context.Context, Event) error { return nil }

func names(hs []Handler) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		switch v := h.(type) {
		case *counter[kindOne]:
			out = append(out, v.label)
		case *counter[kindTwo]:
			out = append(out, v.label)
		case *counter[kindThree]:
			out = append(out, v.label)
		case *catchAll:
			out = append(out, v.label)
		default:
			out = append(out, handlerName(h))
		}
	}
	return out
}
