// Package component provides the polymorphic lifecycle tree that every
// cinder feature hangs off, and the mutex-guarded state container shared
// between the main goroutine and a feature's background worker.
//
// # Lifecycle
//
// Concrete features implement [Component] — Start, Update, Draw,
// HandleEvent, Deinit — and are wrapped in a [Node], which adds the tree
// mechanics: a non-owning parent back-reference, an ordered child list
// bound exactly once by Start, recursion into children on Update and Draw,
// and children-before-parent teardown on Deinit. The teardown order is a
// structural invariant enforced by the Node itself, because children
// commonly hold parent back-references that must stay valid throughout
// their own teardown.
//
// [Base] is a no-op implementation of Component meant for embedding, so a
// feature only overrides the lifecycle methods it actually needs.
//
// # Shared State
//
// [State] pairs one component's mutable data with a mutex. The main
// goroutine touches it inside Update and HandleEvent; the component's
// worker touches it from its run function. Prefer the With and Get
// accessors, which take the lock internally, over the raw Lock/Unlock
// pair — they eliminate unguarded field aliasing across goroutines.
//
// The main goroutine's tree traversal itself is never concurrent: Update,
// Draw and HandleEvent all run on the single frame-driving goroutine.
package component
