// Package registry owns the application's top-level components and drives
// them uniformly once per frame.
//
// The Registry holds component nodes by ID in registration order. It owns
// the iteration order, not the component memory: nodes are created and
// owned by feature code, registered here, and looked up by ID. Per-frame
// failures during Update and Draw are logged and skipped — one broken
// component cannot abort the frame, mirroring the event manager's fault
// isolation — while Start stops on the first error so a partially
// initialized application never runs.
package registry

import (
	"sync"

	"github.com/cinder-flash/cinder/internal/component"
	"github.com/cinder-flash/cinder/internal/errors"
	"github.com/cinder-flash/cinder/internal/logging"
)

// ID identifies a registered top-level component.
type ID string

// Registry drives the top-level component nodes.
type Registry struct {
	mu      sync.Mutex
	order   []ID
	entries map[ID]*component.Node
	log     *logging.Logger
}

// New creates an empty Registry. A nil logger falls back to a no-op logger.
func New(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Registry{
		entries: make(map[ID]*component.Node),
		log:     log,
	}
}

// Register adds a node under id. Duplicate IDs and nil nodes are typed
// errors; registration order is preserved for every bulk operation.
func (r *Registry) Register(id ID, node *component.Node) error {
	if node == nil {
		return errors.NewComponentError("register", errors.ErrNilComponent).
			WithComponent(string(id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; ok {
		return errors.NewComponentError("register", errors.ErrDuplicateID).
			WithComponent(string(id))
	}
	r.entries[id] = node
	r.order = append(r.order, id)
	return nil
}

// Get returns the node registered under id.
func (r *Registry) Get(id ID) (*component.Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	node, ok := r.entries[id]
	return node, ok
}

// IDs returns the registered IDs in registration order.
func (r *Registry) IDs() []ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// StartAll starts every component in registration order, stopping on the
// first error so the application never runs partially initialized.
//
// A node that is already started is skipped, not restarted: feature code
// builds a subtree with Node.Start(children...) and then registers the
// running root, the same way Node.Start itself attaches pre-started child
// subtrees.
func (r *Registry) StartAll() error {
	for _, id := range r.IDs() {
		node, _ := r.Get(id)
		if node.Started() {
			continue
		}
		if err := node.Start(); err != nil {
			return errors.Wrapf(err, "start %q", id)
		}
		r.log.Debug("component started", "id", string(id))
	}
	return nil
}

// UpdateAll updates every component in registration order. An individual
// component error is logged and skipped; the frame always completes.
func (r *Registry) UpdateAll() {
	for _, id := range r.IDs() {
		node, _ := r.Get(id)
		if err := node.Update(); err != nil {
			r.log.Error("component update failed",
				"id", string(id),
				"error", err.Error())
		}
	}
}

// DrawAll renders every component in registration order. Failures follow
// the same log-and-skip policy as UpdateAll; Draw itself cannot fail, so
// this collects whatever each component rendered.
func (r *Registry) DrawAll() []string {
	ids := r.IDs()
	frames := make([]string, 0, len(ids))
	for _, id := range ids {
		node, _ := r.Get(id)
		frames = append(frames, node.Draw())
	}
	return frames
}

// Deinit tears every component down in reverse registration order, so
// later components — which may hold references into earlier ones — are
// torn down first. Within each tree the node enforces children-before-
// parent. All errors are collected; teardown never stops early.
func (r *Registry) Deinit() error {
	ids := r.IDs()

	var errs []error
	for i := len(ids) - 1; i >= 0; i-- {
		node, _ := r.Get(ids[i])
		if err := node.Deinit(); err != nil {
			errs = append(errs, errors.Wrapf(err, "deinit %q", ids[i]))
		}
	}

	r.mu.Lock()
	r.order = nil
	r.entries = make(map[ID]*component.Node)
	r.mu.Unlock()

	return errors.Join(errs...)
}
