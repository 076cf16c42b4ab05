package worker

import "github.com/cinder-flash/cinder/internal/logging"

// Option configures a Worker at construction time.
type Option[T any] func(*Worker[T])

// WithCallback sets a function observing the end of each round. It runs on
// the worker goroutine, after the status has become NeedsJoining, with the
// error the run function returned.
func WithCallback[T any](fn CallbackFunc) Option[T] {
	return func(w *Worker[T]) { w.callback = fn }
}

// WithLogger sets the logger for round logging. The worker derives a
// child logger carrying a worker attr; a nil logger and an omitted option
// both mean no logging.
func WithLogger[T any](log *logging.Logger) Option[T] {
	return func(w *Worker[T]) { w.log = log }
}

// SameGoroutine makes Start execute the round inline on the caller's
// goroutine instead of spawning one. Intended for tests and for trivial
// rounds where a goroutine is not worth its handoff; the poll/join protocol
// is unchanged — Start returns with the worker in NeedsJoining.
func SameGoroutine[T any]() Option[T] {
	return func(w *Worker[T]) { w.sameGoroutine = true }
}
