// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/ManuGH/minibus/internal/log"
	"github.com/ManuGH/minibus/internal/metrics"
)

// AsyncBus queues published events and dispatches them from a single
// goroutine. Events are dequeued in publish order; each matched handler
// becomes a Task handed to the Scheduler, so handlers of one event, and of
// consecutive events, run concurrently.
type AsyncBus struct {
	dispatcher
	scheduler Scheduler

	mu     sync.Mutex
	queue  []*Envelope
	closed bool

	wake    chan struct{}
	stopped chan struct{}
	tasks   sync.WaitGroup
}

// NewAsyncBus returns an asynchronous bus and starts its dispatch loop.
// Call Close to stop it.
func NewAsyncBus(opts ...Option) *AsyncBus {
	o := buildOptions(KindAsync, opts)
	b := &AsyncBus{
		dispatcher: newDispatcher(KindAsync, o),
		scheduler:  o.scheduler,
		wake:       make(chan struct{}, 1),
		stopped:    make(chan struct{}),
	}
	go b.run()
	return b
}

// Publish implements Bus. The event is delivered with a context that keeps
// the values of ctx but not its cancellation.
func (b *AsyncBus) Publish(ctx context.Context, evt Event, opts ...PublishOption) {
	if isAbsent(evt) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	env := newEnvelope(context.WithoutCancel(ctx), evt, opts)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		metrics.IncDropped(b.name, metrics.DropReasonClosed)
		logger := log.WithContext(ctx, b.logger)
		logger.Warn().
			Err(ErrBusClosed).
			Str(log.FieldEvent, "minibus.publish_dropped").
			Str(log.FieldEventType, typeName(EventType(evt))).
			Msg("event published after close")
		return
	}
	b.queue = append(b.queue, env)
	depth := len(b.queue)
	b.mu.Unlock()

	metrics.SetQueueDepth(b.name, depth)
	b.signal()
}

// HasPendingEvents reports whether published events are waiting to be
// dequeued. Events already dequeued whose handlers are still running are
// not counted.
func (b *AsyncBus) HasPendingEvents() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue) > 0
}

// Close stops accepting events, waits for queued events to be dispatched
// and then for scheduled handlers to finish, or for ctx to end. Running
// handlers are never cancelled. Close may be called more than once. A nil
// ctx waits without a deadline.
func (b *AsyncBus) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b.mu.Lock()
	already := b.closed
	b.closed = true
	queued := len(b.queue)
	b.mu.Unlock()

	if already {
		b.logger.Debug().
			Err(ErrBusClosed).
			Str(log.FieldEvent, "minibus.close_repeated").
			Msg("bus already closed")
	} else {
		b.logger.Info().
			Str(log.FieldEvent, "minibus.closing").
			Int(log.FieldQueued, queued).
			Msg("closing bus")
		b.signal()
	}

	select {
	case <-b.stopped:
	case <-ctx.Done():
		return fmt.Errorf("minibus: drain queue: %w", ctx.Err())
	}

	drained := make(chan struct{})
	go func() {
		b.tasks.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("minibus: wait for handlers: %w", ctx.Err())
	}
}

func (b *AsyncBus) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *AsyncBus) run() {
	defer close(b.stopped)
	for {
		b.reclaim()

		env, depth, closed := b.dequeue()
		if env == nil {
			if closed {
				return
			}
			<-b.wake
			continue
		}
		metrics.SetQueueDepth(b.name, depth)
		b.dispatch(env, depth)
	}
}

// dequeue pops the oldest envelope. It returns nil when the queue is empty,
// together with whether the bus is closed.
func (b *AsyncBus) dequeue() (*Envelope, int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		b.queue = nil
		return nil, 0, b.closed
	}
	env := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return env, len(b.queue), b.closed
}

func (b *AsyncBus) dispatch(env *Envelope, depth int) {
	ctx, span, handlers := b.match(env, depth)
	defer span.End()

	for _, h := range handlers {
		task := &Task{Handler: h, Envelope: env}
		task.run = func() {
			defer b.tasks.Done()
			b.deliver(ctx, env, h)
		}
		b.tasks.Add(1)
		b.schedule(ctx, task)
	}
}

// schedule hands task to the scheduler. A panicking scheduler fails the
// task unless it already started running.
func (b *AsyncBus) schedule(ctx context.Context, task *Task) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b.logger.Error().
			Str(log.FieldEvent, "minibus.schedule_panic").
			Str(log.FieldHandler, handlerName(task.Handler)).
			Interface(log.FieldPanic, r).
			Msg("scheduler panicked")
		if task.started.CompareAndSwap(false, true) {
			b.tasks.Done()
			err := &PanicError{Value: r, Stack: debug.Stack()}
			metrics.ObserveHandler(b.name, typeName(EventType(task.Envelope.Event)), resultOf(err), 0)
			b.fail(ctx, task.Envelope, task.Handler, err)
		}
	}()
	b.scheduler.Schedule(task)
}
