// Package worker provides the spawn/poll/join protocol for running a
// component's blocking work off the main goroutine.
//
// A [Worker] is bound 1:1 to one component's [component.State] and cycles
// through three states:
//
//	Idle → (Start) → Running → (run returns) → NeedsJoining → (Join) → Idle
//
// The cycle is deliberate: a worker is reused across rounds (discovery,
// verification, update checks). The main goroutine detects completion by
// polling once per frame — never by blocking — and calls Join only after
// observing NeedsJoining, so the frame loop is never stalled on in-flight
// work.
//
// The run function owns the locking discipline: it takes the bound state's
// lock for as long as it needs to compute and publish results, typically
// finishing by broadcasting an event with self-delivery enabled, because
// the worker's own owning component is the intended recipient.
//
// # Contract
//
// The callback, if any, runs on the worker goroutine, immediately after the
// run function returns and after the status has become NeedsJoining. Join
// is therefore a pure reclaim step on the main goroutine.
//
// The run function's error is captured and returned from Join, so a failed
// round is visible to the owner without any side channel. Run functions
// that prefer to degrade in place (publish an empty result, return nil)
// may still do so.
package worker

import (
	"context"
	"sync/atomic"

	"github.com/cinder-flash/cinder/internal/component"
	"github.com/cinder-flash/cinder/internal/errors"
	"github.com/cinder-flash/cinder/internal/logging"
)

// Status is a worker's position in the spawn/poll/join cycle.
type Status int32

const (
	// StatusIdle means no round is in flight; Start is permitted.
	StatusIdle Status = iota
	// StatusRunning means the run function has not returned yet.
	StatusRunning
	// StatusNeedsJoining means the run function has returned and the
	// goroutine is ready to be reclaimed by Join.
	StatusNeedsJoining
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusNeedsJoining:
		return "needs_joining"
	default:
		return "unknown"
	}
}

// RunFunc is the body of a worker round. It runs off the main goroutine
// (unless the worker was built with SameGoroutine) and is responsible for
// taking st's lock around every touch of the shared payload. Errors it
// cannot handle internally are returned and surface from Join.
type RunFunc[T any] func(ctx context.Context, st *component.State[T]) error

// CallbackFunc observes the end of a round. It runs on the worker
// goroutine; err is what the run function returned.
type CallbackFunc func(err error)

// Worker executes a possibly-blocking function off the main goroutine and
// lets the main goroutine detect completion without blocking, then reclaim
// the goroutine deterministically.
//
// Status, Poll and Join are main-goroutine operations; Start may be called
// from the main goroutine only. The zero Worker is not usable; construct
// with New.
type Worker[T any] struct {
	name          string
	state         *component.State[T]
	run           RunFunc[T]
	callback      CallbackFunc
	log           *logging.Logger
	sameGoroutine bool

	status atomic.Int32
	done   chan struct{}
	err    error
}

// New creates a Worker bound to st. It does not start anything.
func New[T any](name string, st *component.State[T], run RunFunc[T], opts ...Option[T]) (*Worker[T], error) {
	if st == nil {
		return nil, errors.NewWorkerError("new", errors.ErrNilState).WithWorker(name)
	}
	if run == nil {
		return nil, errors.NewWorkerError("new", errors.ErrNilRunFunc).WithWorker(name)
	}

	w := &Worker[T]{name: name, state: st, run: run}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logging.NopLogger()
	}
	w.log = w.log.WithWorker(name)
	return w, nil
}

// Name returns the worker's name.
func (w *Worker[T]) Name() string { return w.name }

// State returns the bound component state.
func (w *Worker[T]) State() *component.State[T] { return w.state }

// Status returns the worker's current status.
func (w *Worker[T]) Status() Status {
	return Status(w.status.Load())
}

// Poll reports whether the run function has returned and the worker is
// ready to be reclaimed. It never blocks; the typical caller pattern is an
// unconditional per-frame poll followed by Join when Poll is true.
func (w *Worker[T]) Poll() bool {
	return w.Status() == StatusNeedsJoining
}

// Start begins a round. It is valid only from Idle; starting a running or
// unjoined worker is a lifecycle error. ctx is passed through to the run
// function for cancellation; Start itself does not block.
//
// With the SameGoroutine option the round executes inline and Start
// returns after it completes, with the worker already in NeedsJoining.
func (w *Worker[T]) Start(ctx context.Context) error {
	if !w.status.CompareAndSwap(int32(StatusIdle), int32(StatusRunning)) {
		return errors.NewWorkerError("start", errors.ErrWorkerBusy).
			WithWorker(w.name).
			WithStatus(w.Status().String())
	}

	w.err = nil
	w.done = make(chan struct{})

	if w.sameGoroutine {
		w.round(ctx)
		return nil
	}

	go w.round(ctx)
	return nil
}

// round executes one run of the worker body.
func (w *Worker[T]) round(ctx context.Context) {
	defer close(w.done)

	err := w.invoke(ctx)
	w.err = err
	// The atomic store publishes w.err to the polling goroutine: it reads
	// the status before touching the error.
	w.status.Store(int32(StatusNeedsJoining))

	if err != nil {
		w.log.Error("worker round failed", "error", err.Error())
	} else {
		w.log.Debug("worker round finished")
	}

	if w.callback != nil {
		w.callback(err)
	}
}

// invoke runs the body with panic containment, so a panicking round
// transitions to NeedsJoining instead of hanging the poll forever.
func (w *Worker[T]) invoke(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewWorkerError("run", errors.ErrWorkerPanicked).
				WithWorker(w.name)
		}
	}()
	return w.run(ctx, w.state)
}

// Join reclaims the goroutine after a completed round and returns the run
// function's error. It is valid only from NeedsJoining and is a no-op from
// any other state, because the typical caller polls unconditionally every
// frame. The block, if any, is near-instant: the run function has already
// returned by the time NeedsJoining is observable.
//
// After Join the worker is Idle and a subsequent Start succeeds.
func (w *Worker[T]) Join() error {
	if w.Status() != StatusNeedsJoining {
		return nil
	}

	<-w.done
	err := w.err
	w.err = nil
	w.done = nil
	w.status.Store(int32(StatusIdle))
	return err
}

// Wait blocks until the in-flight round finishes or ctx is done. It exists
// for teardown paths that cancel a long-running round and must reclaim the
// worker deterministically before the owning component deinitializes:
//
//	cancel()
//	if err := w.Wait(ctx); err == nil {
//	    result = w.Join()
//	}
//
// Wait does not change the worker's status; follow it with Join. Waiting on
// an idle worker returns immediately.
func (w *Worker[T]) Wait(ctx context.Context) error {
	if w.Status() == StatusIdle {
		return nil
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return errors.NewWorkerError("wait", errors.ErrCanceled).WithWorker(w.name)
	}
}
