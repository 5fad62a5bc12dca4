// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import "context"

// Bus is the publish/subscribe surface shared by SyncBus and AsyncBus.
type Bus interface {
	// Subscribe registers h. Subscribing the same handler twice is a no-op.
	Subscribe(h Handler) error
	// Unsubscribe removes h. After it returns, h receives no events
	// published later.
	Unsubscribe(h Handler)
	// Publish delivers evt to every matching handler. Nil events are
	// ignored. Handler failures are reported through OnFailure and logs,
	// never to the caller.
	Publish(ctx context.Context, evt Event, opts ...PublishOption)
	// HasPendingEvents reports whether published events are still waiting
	// for dispatch.
	HasPendingEvents() bool
}

var (
	_ Bus = (*SyncBus)(nil)
	_ Bus = (*AsyncBus)(nil)
)
