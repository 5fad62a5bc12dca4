// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import "context"

// Invoker controls how a matched handler is called. It runs inside the
// bus's panic recovery, so an Invoker may let handler panics propagate.
type Invoker interface {
	Invoke(ctx context.Context, h Handler, evt Event) error
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, h Handler, evt Event) error

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, h Handler, evt Event) error {
	return f(ctx, h, evt)
}

// DirectInvoker calls Handle with no decoration. It is the default.
var DirectInvoker Invoker = InvokerFunc(func(ctx context.Context, h Handler, evt Event) error {
	return h.Handle(ctx, evt)
})
