// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import "context"

// SuccessFunc is called once per handler that processed an event without
// error.
type SuccessFunc func(evt Event, h Handler)

// FailureFunc is called once per handler that failed on an event, with the
// returned error or a *PanicError.
type FailureFunc func(evt Event, h Handler, err error)

// Envelope is one publish call: the event, the context it was published
// with and the optional callbacks. It is never shared across publishes.
type Envelope struct {
	Event     Event
	OnSuccess SuccessFunc
	OnFailure FailureFunc

	ctx context.Context
}

// Context returns the context the event was published with.
func (e *Envelope) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// PublishOption customizes a single publish call.
type PublishOption func(*Envelope)

// OnSuccess registers fn to run after each handler that succeeds.
func OnSuccess(fn SuccessFunc) PublishOption {
	return func(e *Envelope) {
		e.OnSuccess = fn
	}
}

// OnFailure registers fn to run after each handler that fails.
func OnFailure(fn FailureFunc) PublishOption {
	return func(e *Envelope) {
		e.OnFailure = fn
	}
}

func newEnvelope(ctx context.Context, evt Event, opts []PublishOption) *Envelope {
	env := &Envelope{Event: evt, ctx: ctx}
	for _, opt := range opts {
		if opt != nil {
			opt(env)
		}
	}
	return env
}
