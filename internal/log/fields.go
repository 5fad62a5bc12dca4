// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldCorrelationID = "correlation_id"
	FieldRequestID     = "request_id"
	FieldRunID         = "run_id"
	FieldTraceID       = "trace_id"
	FieldSpanID        = "span_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Bus fields
	FieldBus       = "bus"
	FieldBusKind   = "bus_kind"
	FieldEventType = "event_type"
	FieldHandler   = "handler"
	FieldName      = "name"
	FieldReclaimed = "reclaimed"
	FieldQueued    = "queued"
	FieldDuration  = "duration"
	FieldPanic     = "panic"
	FieldStack     = "stack"

	// Network fields
	FieldListenAddr = "listen_addr"
	FieldPath       = "path"
)
