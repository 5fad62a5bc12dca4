// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"reflect"
	"runtime"
	"unsafe"
	"weak"
)

// handlerKey is the identity of a subscribed handler: the dynamic type plus
// the address of pointer handlers, or the value itself for strongly held
// comparable handlers.
type handlerKey struct {
	typ  reflect.Type
	addr uintptr
	val  any
}

// handlerRef is a registry entry. Pointer handlers on the Go heap are held
// through a weak pointer; everything else is held strongly in strong.
type handlerRef struct {
	key    handlerKey
	linked reflect.Type

	strong Handler
	weak   weak.Pointer[byte]

	cleanup    runtime.Cleanup
	hasCleanup bool
}

// identify computes the registry key for h. ptr is non-nil for handlers
// that are candidates for weak holding.
func identify(h Handler) (handlerKey, unsafe.Pointer, error) {
	if h == nil {
		return handlerKey{}, nil, ErrNilHandler
	}
	v := reflect.ValueOf(h)
	typ := v.Type()
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return handlerKey{}, nil, ErrNilHandler
		}
		p := v.UnsafePointer()
		return handlerKey{typ: typ, addr: uintptr(p)}, p, nil
	}
	if !v.Comparable() {
		return handlerKey{}, nil, ErrHandlerNotComparable
	}
	// Values that are not equal to themselves (NaN fields) can never be
	// found again as map keys.
	if h != h { //nolint:staticcheck // self-comparison detects NaN
		return handlerKey{}, nil, ErrHandlerNotComparable
	}
	return handlerKey{typ: typ, val: h}, nil, nil
}

// newRef builds an entry for h. onCollect is registered as the cleanup for
// weakly held handlers and receives the entry once the handler is gone.
func newRef(h Handler, key handlerKey, ptr unsafe.Pointer, onCollect func(*handlerRef)) *handlerRef {
	ref := &handlerRef{key: key, linked: h.LinkedType()}
	if ptr == nil || key.typ.Elem().Size() == 0 {
		ref.strong = h
		return ref
	}
	// AddCleanup returns the zero Cleanup for pointers outside the heap
	// (package-level variables). weak.Make must not see those.
	c := runtime.AddCleanup((*byte)(ptr), onCollect, ref)
	if c == (runtime.Cleanup{}) {
		ref.strong = h
		return ref
	}
	ref.weak = weak.Make((*byte)(ptr))
	ref.cleanup = c
	ref.hasCleanup = true
	return ref
}

// get returns the live handler, or false once the referent was collected.
func (r *handlerRef) get() (Handler, bool) {
	if r.strong != nil {
		return r.strong, true
	}
	p := r.weak.Value()
	if p == nil {
		return nil, false
	}
	h, ok := reflect.NewAt(r.key.typ.Elem(), unsafe.Pointer(p)).Interface().(Handler)
	return h, ok
}

func (r *handlerRef) stop() {
	if r.hasCleanup {
		r.cleanup.Stop()
		r.hasCleanup = false
	}
}
