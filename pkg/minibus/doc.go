// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package minibus is an in-process typed publish/subscribe dispatcher.
//
// Producers publish event values; subscribed handlers receive every event
// whose dynamic type equals their linked type, or, when a handler declares
// no linked type, every event its CanHandle predicate accepts.
//
// Two engines share the same registry:
//
//   - SyncBus runs matched handlers inline on the publishing goroutine.
//   - AsyncBus queues events and fans each one out to a Scheduler from a
//     single dispatch goroutine.
//
// Pointer handlers are held weakly. A handler that is no longer referenced
// anywhere else is garbage collected and drops out of the registry before
// the next dispatch cycle, so callers must keep a reference to a handler for
// as long as it should receive events, or unsubscribe it explicitly.
//
// Handler failures, whether returned errors or panics, are isolated per
// handler. They are logged and reported to the OnFailure callback of the
// publish call that produced them; Publish itself never fails.
package minibus
