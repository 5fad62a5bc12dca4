// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the bus.
const (
	// Delivery attributes
	BusNameKey     = "minibus.bus"
	BusKindKey     = "minibus.bus_kind"
	EventTypeKey   = "minibus.event_type"
	HandlerTypeKey = "minibus.handler"
	MatchedKey     = "minibus.matched"
	QueueDepthKey  = "minibus.queue_depth"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// DeliveryAttributes creates span attributes for one handler delivery.
func DeliveryAttributes(bus, kind, eventType, handler string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	if bus != "" {
		attrs = append(attrs, attribute.String(BusNameKey, bus))
	}
	if kind != "" {
		attrs = append(attrs, attribute.String(BusKindKey, kind))
	}
	attrs = append(attrs,
		attribute.String(EventTypeKey, eventType),
		attribute.String(HandlerTypeKey, handler),
	)
	return attrs
}

// DispatchAttributes creates span attributes for matching one event.
func DispatchAttributes(bus, eventType string, matched, queueDepth int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(BusNameKey, bus),
		attribute.String(EventTypeKey, eventType),
		attribute.Int(MatchedKey, matched),
		attribute.Int(QueueDepthKey, queueDepth),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
