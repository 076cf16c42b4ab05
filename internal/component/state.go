package component

import "sync"

// State pairs one component's mutable data with a mutex — the unit of
// sharable state between the main goroutine and the component's worker.
//
// Every access to the payload from more than one goroutine must hold the
// lock. The With and Get accessors take it internally; Lock/Unlock exist
// for handlers that need to hold the lock across several operations. The
// mutex is plain mutual exclusion: non-reentrant, no timeout. A deadlock
// from recursive locking is a caller bug, not a reported error.
//
// A State is never destroyed independently of its owning component.
type State[T any] struct {
	mu   sync.Mutex
	data T
}

// NewState creates a State holding data.
func NewState[T any](data T) *State[T] {
	return &State[T]{data: data}
}

// Lock acquires the mutex and returns the payload for direct access.
// The caller must call Unlock when done and must not retain the pointer
// past the unlock.
func (s *State[T]) Lock() *T {
	s.mu.Lock()
	return &s.data
}

// Unlock releases the mutex.
func (s *State[T]) Unlock() {
	s.mu.Unlock()
}

// With runs fn with the lock held. This is the preferred access path: the
// payload pointer cannot escape the critical section by accident.
func (s *State[T]) With(fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// Get returns a copy of the payload taken under the lock. Useful for Draw,
// which must not hold the lock while rendering.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Set replaces the payload under the lock.
func (s *State[T]) Set(data T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}
