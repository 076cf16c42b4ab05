package component

import (
	"github.com/cinder-flash/cinder/internal/event"
)

// Component is the uniform lifecycle surface over heterogeneous concrete
// types. Feature code implements it and wraps the implementation in a
// [Node]; the registry and the event manager only ever see Nodes.
type Component interface {
	// Start performs one-time setup: allocating state, creating workers,
	// subscribing to the event bus. It is called exactly once, by the
	// owning Node.
	Start() error

	// Update advances the component by one frame. Components poll their
	// workers here.
	Update() error

	// Draw renders the component's current content as text. It must not
	// mutate state.
	Draw() string

	// HandleEvent reacts to a broadcast event. Implementations dispatch on
	// the event's hash, lock their own state to absorb the update, and
	// ignore events they do not recognize. HandleEvent must be reentrant:
	// it may broadcast further events before returning.
	HandleEvent(ev *event.Event) (event.Result, error)

	// Deinit releases the component's resources. Workers must be joined
	// before Deinit returns.
	Deinit() error
}

// Base is a no-op Component for embedding. Features embed it and override
// only the lifecycle methods they need.
type Base struct{}

// Start implements Component.
func (Base) Start() error { return nil }

// Update implements Component.
func (Base) Update() error { return nil }

// Draw implements Component.
func (Base) Draw() string { return "" }

// HandleEvent implements Component.
func (Base) HandleEvent(*event.Event) (event.Result, error) { return event.Result{}, nil }

// Deinit implements Component.
func (Base) Deinit() error { return nil }
