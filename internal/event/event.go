package event

import (
	"hash/fnv"
	"time"
)

// Hash identifies an event kind. It is a pure deterministic function of the
// event's name, computed once when the definition is constructed, so
// handlers can switch on it instead of comparing strings.
type Hash uint64

// HashName computes the 64-bit FNV-1a hash of an event name.
// The function is versioned by convention: changing it invalidates every
// hash comparison in the application, so it must never change silently.
func HashName(name string) Hash {
	h := fnv.New64a()
	// fnv.Write never returns an error.
	_, _ = h.Write([]byte(name))
	return Hash(h.Sum64())
}

// Result reports what a handler did with an event.
type Result struct {
	// Handled is true if the handler recognized the event's hash and
	// absorbed it.
	Handled bool
	// Responded is true if the handler wrote a query response.
	Responded bool
}

// Subscriber is implemented by anything that can receive events from the
// Manager. Component nodes are the usual subscribers. Implementations must
// be comparable values — in practice, pointers — because the Manager uses
// identity for self-delivery suppression and duplicate detection.
//
// HandleEvent must be reentrant: a handler is allowed to build and
// broadcast further events before returning.
type Subscriber interface {
	HandleEvent(ev *Event) (Result, error)
}

// Event is a named, hash-identified message carried through the bus with an
// opaque payload. Events are built by a [Definition] or [Query], never
// directly.
type Event struct {
	name            string
	hash            Hash
	source          Subscriber
	deliverToSource bool
	payload         any
	timestamp       time.Time
}

// Name returns the event's dotted name, e.g. "flash.progress".
func (e *Event) Name() string { return e.name }

// EventHash returns the hash of the event's name.
func (e *Event) EventHash() Hash { return e.hash }

// Source returns the subscriber that originated the event, or nil.
// The reference is non-owning; it exists only so the Manager can suppress
// self-delivery.
func (e *Event) Source() Subscriber { return e.source }

// Timestamp returns when the event was created.
func (e *Event) Timestamp() time.Time { return e.timestamp }

// SelfDelivery reports whether the event will be delivered back to its own
// source.
func (e *Event) SelfDelivery() bool { return e.deliverToSource }

// WithSelfDelivery marks the event for delivery back to its own source,
// overriding the default suppression. Workers use this when publishing
// results intended for their own owning component. It returns the event for
// chaining.
func (e *Event) WithSelfDelivery() *Event {
	e.deliverToSource = true
	return e
}

// Matches reports whether the event carries the given hash.
func (e *Event) Matches(h Hash) bool { return e.hash == h }
