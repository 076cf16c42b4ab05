package event

import (
	"time"

	"github.com/cinder-flash/cinder/internal/errors"
)

// Definition is a static descriptor for one event kind: its name, its hash,
// and its request payload type. Definitions are cheap values meant to be
// declared once as package-level variables, e.g.
//
//	var FlashProgress = event.Define[FlashProgressData]("flash.progress")
//
// and shared by every producer and consumer of that event.
type Definition[Req any] struct {
	name string
	hash Hash
}

// Define constructs the definition for a named event kind carrying a Req
// payload. The hash is computed once here.
func Define[Req any](name string) Definition[Req] {
	return Definition[Req]{name: name, hash: HashName(name)}
}

// Name returns the event name this definition describes.
func (d Definition[Req]) Name() string { return d.name }

// Hash returns the precomputed hash of the event name.
func (d Definition[Req]) Hash() Hash { return d.hash }

// New builds an event of this kind. source may be nil for events with no
// originating component. Self-delivery is suppressed by default; chain
// [Event.WithSelfDelivery] to override.
func (d Definition[Req]) New(source Subscriber, req *Req) *Event {
	return &Event{
		name:      d.name,
		hash:      d.hash,
		source:    source,
		payload:   req,
		timestamp: time.Now(),
	}
}

// Data returns the typed request payload if ev carries this definition's
// hash, or (nil, false) otherwise. This is the only type-confusion guard
// the bus provides: handlers must check ok before touching the payload.
func (d Definition[Req]) Data(ev *Event) (*Req, bool) {
	if ev == nil || ev.hash != d.hash {
		return nil, false
	}
	req, ok := ev.payload.(*Req)
	if !ok {
		return nil, false
	}
	return req, true
}

// queryEnvelope is the payload of a query event: the request plus the
// response slot the matching handler writes into. Broadcast is synchronous,
// so the slot is only ever touched by handlers running on the asking
// goroutine's call chain; it needs no lock of its own.
type queryEnvelope[Req, Resp any] struct {
	req       Req
	resp      Resp
	responses int
}

// responseCounter lets the Manager inspect a query envelope without knowing
// its type parameters.
type responseCounter interface {
	responseCount() int
}

func (env *queryEnvelope[Req, Resp]) responseCount() int { return env.responses }

// Query is a static descriptor for a request/response event kind. Unlike a
// plain [Definition], a query expects exactly one subscriber to answer it
// synchronously during broadcast; [Manager.Ask] enforces that expectation.
type Query[Req, Resp any] struct {
	name string
	hash Hash
}

// DefineQuery constructs the descriptor for a named query kind.
func DefineQuery[Req, Resp any](name string) Query[Req, Resp] {
	return Query[Req, Resp]{name: name, hash: HashName(name)}
}

// Name returns the query's event name.
func (q Query[Req, Resp]) Name() string { return q.name }

// Hash returns the precomputed hash of the query's event name.
func (q Query[Req, Resp]) Hash() Hash { return q.hash }

// New builds a query event carrying req and an empty response slot.
func (q Query[Req, Resp]) New(source Subscriber, req Req) *Event {
	return &Event{
		name:      q.name,
		hash:      q.hash,
		source:    source,
		payload:   &queryEnvelope[Req, Resp]{req: req},
		timestamp: time.Now(),
	}
}

// Request returns the typed request payload if ev carries this query's
// hash, or (nil, false) otherwise.
func (q Query[Req, Resp]) Request(ev *Event) (*Req, bool) {
	env, ok := q.envelope(ev)
	if !ok {
		return nil, false
	}
	return &env.req, true
}

// Respond writes the response into ev's response slot. Handlers call this
// at most once per event; a second responder is a convention violation that
// [Manager.Ask] reports to the asking side.
func (q Query[Req, Resp]) Respond(ev *Event, resp Resp) error {
	env, ok := q.envelope(ev)
	if !ok {
		return errors.NewEventError("respond on mismatched event", errors.ErrNotQuery).
			WithEvent(q.name)
	}
	env.resp = resp
	env.responses++
	return nil
}

// Response returns the response written by the handler, and whether exactly
// one handler responded. Callers read it immediately after Ask returns.
func (q Query[Req, Resp]) Response(ev *Event) (Resp, bool) {
	env, ok := q.envelope(ev)
	if !ok || env.responses != 1 {
		var zero Resp
		return zero, false
	}
	return env.resp, true
}

func (q Query[Req, Resp]) envelope(ev *Event) (*queryEnvelope[Req, Resp], bool) {
	if ev == nil || ev.hash != q.hash {
		return nil, false
	}
	env, ok := ev.payload.(*queryEnvelope[Req, Resp])
	return env, ok
}
