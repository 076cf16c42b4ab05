package component

import (
	"strings"

	"github.com/cinder-flash/cinder/internal/errors"
	"github.com/cinder-flash/cinder/internal/event"
)

// Node binds a Component into the lifecycle tree. It owns the ordered child
// list and a non-owning back-reference to its parent; the concrete
// Component itself stays owned by the feature code that created it.
//
// A Node is the unit the registry drives and the event manager delivers to.
type Node struct {
	impl     Component
	name     string
	parent   *Node
	children []*Node
	started  bool
}

// New wraps impl in a Node. The name identifies the component in logs and
// errors; it is not required to be unique.
func New(name string, impl Component) (*Node, error) {
	if impl == nil {
		return nil, errors.NewComponentError("new", errors.ErrNilComponent).WithComponent(name)
	}
	return &Node{impl: impl, name: name}, nil
}

// MustNew is New for static component wiring, where a nil implementation is
// a programming error.
func MustNew(name string, impl Component) *Node {
	n, err := New(name, impl)
	if err != nil {
		panic(err)
	}
	return n
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil for a root. The reference is
// non-owning: it is a lookup aid, never used to manage memory.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in registration order. The returned
// slice is the node's own; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Started reports whether Start has completed on this node.
func (n *Node) Started() bool { return n.started }

// Component returns the wrapped implementation.
func (n *Node) Component() Component { return n.impl }

// Start binds the child list — exactly once — and starts the component,
// then any children that are not already started. Children carrying their
// own subtrees may be started leaf-first by feature code before being
// passed here; they are attached without being restarted.
//
// Calling Start a second time is a lifecycle error and leaves prior state
// unchanged.
func (n *Node) Start(children ...*Node) error {
	if n.started {
		return errors.NewComponentError("start called twice", errors.ErrAlreadyStarted).
			WithComponent(n.name)
	}
	for _, child := range children {
		if child.parent != nil {
			return errors.NewComponentError("attach "+child.name, errors.ErrAlreadyAttached).
				WithComponent(n.name)
		}
	}

	for _, child := range children {
		child.parent = n
	}
	n.children = children
	n.started = true

	if err := n.impl.Start(); err != nil {
		return errors.Wrapf(err, "start component %q", n.name)
	}

	for _, child := range n.children {
		if child.started {
			continue
		}
		if err := child.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Update advances the component, then its children in registration order.
func (n *Node) Update() error {
	if err := n.impl.Update(); err != nil {
		return errors.Wrapf(err, "update component %q", n.name)
	}
	for _, child := range n.children {
		if err := child.Update(); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the component, then its children in registration order,
// joined by newlines. Empty renders are skipped.
func (n *Node) Draw() string {
	parts := make([]string, 0, len(n.children)+1)
	if s := n.impl.Draw(); s != "" {
		parts = append(parts, s)
	}
	for _, child := range n.children {
		if s := child.Draw(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// HandleEvent dispatches the event to the wrapped component. Children
// subscribe to the bus individually; the tree does not fan events out.
func (n *Node) HandleEvent(ev *event.Event) (event.Result, error) {
	return n.impl.HandleEvent(ev)
}

// Deinit tears the subtree down depth-first, children before the node
// itself, so that parent back-references stay valid throughout each
// child's own teardown. All errors are collected; teardown never stops
// early.
func (n *Node) Deinit() error {
	var errs []error
	for _, child := range n.children {
		if err := child.Deinit(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := n.impl.Deinit(); err != nil {
		errs = append(errs, errors.Wrapf(err, "deinit component %q", n.name))
	}
	return errors.Join(errs...)
}
