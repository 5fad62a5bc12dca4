// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"reflect"
	"sync"
)

// Registry is the subscriber set shared by both bus engines. Linked handlers
// are indexed by event type; predicate handlers live in a separate set that
// is consulted for every event type.
//
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	byType    map[reflect.Type]map[handlerKey]*handlerRef
	predicate map[handlerKey]*handlerRef
	all       map[handlerKey]*handlerRef

	qmu       sync.Mutex
	collected []*handlerRef
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:    make(map[reflect.Type]map[handlerKey]*handlerRef),
		predicate: make(map[handlerKey]*handlerRef),
		all:       make(map[handlerKey]*handlerRef),
	}
}

// Subscribe adds h. Subscribing a handler that is already present is a
// no-op, so a handler is never delivered the same event twice.
//
// Pointer handlers are identified by type and address. Distinct pointers
// to a zero-size type may share one address, in which case they are a
// single subscriber: unsubscribing one unsubscribes all of them. Give such
// handlers a field if they need separate identities.
func (r *Registry) Subscribe(h Handler) error {
	key, ptr, err := identify(h)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.all[key]; ok {
		if _, live := old.get(); live {
			return nil
		}
		// A collected handler whose address was reused before reclamation.
		r.removeLocked(old)
		old.stop()
	}

	ref := newRef(h, key, ptr, r.enqueueCollected)
	r.all[key] = ref
	if ref.linked != nil {
		set := r.byType[ref.linked]
		if set == nil {
			set = make(map[handlerKey]*handlerRef)
			r.byType[ref.linked] = set
		}
		set[key] = ref
	} else {
		r.predicate[key] = ref
	}
	return nil
}

// Unsubscribe removes h from whichever set it was subscribed to. Unknown
// handlers are ignored.
func (r *Registry) Unsubscribe(h Handler) {
	key, _, err := identify(h)
	if err != nil {
		return
	}

	r.mu.Lock()
	ref, ok := r.all[key]
	if ok {
		r.removeLocked(ref)
	}
	r.mu.Unlock()

	if ok {
		ref.stop()
	}
}

// Reclaim removes the entries of handlers collected since the last call and
// returns how many were removed.
func (r *Registry) Reclaim() int {
	r.qmu.Lock()
	queue := r.collected
	r.collected = nil
	r.qmu.Unlock()

	if len(queue) == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ref := range queue {
		if r.all[ref.key] == ref {
			r.removeLocked(ref)
			n++
		}
	}
	return n
}

// Match returns the live handlers for events of type t: linked handlers
// first, then predicate handlers whose CanHandle accepts t. Order within
// each group is unspecified.
func (r *Registry) Match(t reflect.Type) []Handler {
	if t == nil {
		return nil
	}

	r.mu.RLock()
	linked := make([]*handlerRef, 0, len(r.byType[t]))
	for _, ref := range r.byType[t] {
		linked = append(linked, ref)
	}
	preds := make([]*handlerRef, 0, len(r.predicate))
	for _, ref := range r.predicate {
		preds = append(preds, ref)
	}
	r.mu.RUnlock()

	out := make([]Handler, 0, len(linked)+len(preds))
	for _, ref := range linked {
		if h, ok := ref.get(); ok {
			out = append(out, h)
		}
	}
	for _, ref := range preds {
		if h, ok := ref.get(); ok && canHandle(h, t) {
			out = append(out, h)
		}
	}
	return out
}

// Len returns the number of entries, including collected handlers that
// have not been reclaimed yet.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

func (r *Registry) enqueueCollected(ref *handlerRef) {
	r.qmu.Lock()
	r.collected = append(r.collected, ref)
	r.qmu.Unlock()
}

func (r *Registry) removeLocked(ref *handlerRef) {
	if r.all[ref.key] == ref {
		delete(r.all, ref.key)
	}
	if ref.linked == nil {
		if r.predicate[ref.key] == ref {
			delete(r.predicate, ref.key)
		}
		return
	}
	set := r.byType[ref.linked]
	if set[ref.key] == ref {
		delete(set, ref.key)
	}
	if len(set) == 0 {
		delete(r.byType, ref.linked)
	}
}

// canHandle treats a panicking predicate as a rejection.
func canHandle(h Handler, t reflect.Type) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return h.CanHandle(t)
}
