// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Task is one (handler, event) delivery produced by the AsyncBus dispatch
// loop.
type Task struct {
	Handler  Handler
	Envelope *Envelope

	run     func()
	started atomic.Bool
}

// Run performs the delivery. Only the first call has any effect.
func (t *Task) Run() {
	if t.run == nil || !t.started.CompareAndSwap(false, true) {
		return
	}
	t.run()
}

// Scheduler turns tasks into work. Schedule is called from the dispatch
// loop and must not wait for the task to finish; every task must
// eventually be Run for AsyncBus.Close to return.
type Scheduler interface {
	Schedule(t *Task)
}

// ElasticPool runs every task on its own goroutine. It is the default
// AsyncBus scheduler.
type ElasticPool struct{}

// Schedule implements Scheduler.
func (ElasticPool) Schedule(t *Task) {
	go t.Run()
}

// BoundedPool caps the number of tasks running at once. Waiting tasks park
// on their own goroutine, so Schedule never blocks the dispatch loop.
type BoundedPool struct {
	sem *semaphore.Weighted
}

// NewBoundedPool returns a pool running at most n tasks concurrently.
// Values below one are treated as one.
func NewBoundedPool(n int) *BoundedPool {
	if n < 1 {
		n = 1
	}
	return &BoundedPool{sem: semaphore.NewWeighted(int64(n))}
}

// Schedule implements Scheduler.
func (p *BoundedPool) Schedule(t *Task) {
	go func() {
		// Acquire only fails on context cancellation.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		t.Run()
	}()
}
