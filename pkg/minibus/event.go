// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import "reflect"

// Event is any value that can be published. Its dynamic type is the routing
// key; handlers must treat the value as immutable.
type Event any

// TypeOf returns the routing key for events of type E.
func TypeOf[E any]() reflect.Type {
	return reflect.TypeFor[E]()
}

// EventType returns the routing key of evt, or nil for an absent event.
func EventType(evt Event) reflect.Type {
	if isAbsent(evt) {
		return nil
	}
	return reflect.TypeOf(evt)
}

// isAbsent reports whether evt is a nil interface or a typed nil pointer.
func isAbsent(evt Event) bool {
	if evt == nil {
		return true
	}
	v := reflect.ValueOf(evt)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
