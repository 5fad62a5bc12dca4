// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"errors"
	"fmt"
)

var (
	// ErrNilHandler is returned when subscribing a nil handler.
	ErrNilHandler = errors.New("minibus: nil handler")

	// ErrHandlerNotComparable is returned for handlers whose dynamic type
	// has no identity, such as func, map or slice kinds.
	ErrHandlerNotComparable = errors.New("minibus: handler is not comparable")

	// ErrBusClosed reports use of a bus after Close.
	ErrBusClosed = errors.New("minibus: bus closed")
)

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("minibus: handler panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
