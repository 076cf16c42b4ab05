// Package event provides the typed pub-sub message bus that decouples
// cinder's components from one another.
//
// Components subscribe to the [Manager] and receive every broadcast event;
// each handler recognizes the events it cares about by comparing the
// event's hash against the hashes of the definitions it knows. Publishers
// never name their receivers, and receivers never name their producers.
//
// # Main Types
//
//   - [Event]: a named, hash-identified message with an opaque payload
//   - [Definition]: a typed descriptor that manufactures and decodes events of one kind
//   - [Query]: a request/response descriptor for synchronous single-responder queries
//   - [Manager]: the broker — ordered fan-out with source suppression and fault isolation
//   - [Catalog]: the collision registry over the application's event names
//
// # Identity
//
// Every event kind declares a unique dotted name, e.g.
// "device.discover_finished". The name is hashed once with 64-bit FNV-1a
// when the definition is constructed; handlers dispatch on the hash, never
// on the string. [Definition.Data] returns ok=false on a hash mismatch,
// which is the bus's only type-confusion guard — the payload itself is
// opaque. The [Catalog] exists so the application can prove, in a test,
// that no two names in its full event set collide.
//
// # Delivery Semantics
//
// Broadcast is synchronous: every matching handler has run by the time
// Broadcast returns. Subscribers are invoked in registration order, and the
// event's own source is skipped unless the event was built with
// [Event.WithSelfDelivery] — the override exists for workers, whose owning
// component is usually the intended recipient of the result they publish.
//
// A handler error or panic is logged and does not stop delivery to the
// remaining subscribers: one broken listener cannot block the bus.
//
// Events broadcast from the same goroutine are delivered in program order.
// There is no ordering guarantee between events broadcast concurrently from
// different goroutines.
//
// # Queries
//
// [Manager.Ask] layers a synchronous request/response convention on top of
// broadcast: the caller builds a query event, exactly one subscriber is
// expected to recognize it and write a response before its handler returns,
// and the caller reads the response immediately afterward. Ask enforces the
// exactly-one-responder rule and returns [errors.ErrNoResponder] or
// [errors.ErrMultipleResponders] when the convention is violated.
//
// # Thread Safety
//
// The [Manager] guards its subscriber list with its own mutex, independent
// of any component's state lock. Subscribe and Broadcast are safe from any
// goroutine; fan-out runs on a snapshot of the list, so handlers may
// subscribe or broadcast reentrantly without deadlocking the bus.
package event
