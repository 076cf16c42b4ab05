package event

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/cinder-flash/cinder/internal/errors"
	"github.com/cinder-flash/cinder/internal/logging"
)

// Delivery summarizes one broadcast.
type Delivery struct {
	// Delivered is the number of handlers invoked.
	Delivered int
	// Handled is the number of handlers that recognized the event.
	Handled int
	// Errors is the number of handlers that returned an error or panicked.
	Errors int
}

// Stats holds cumulative counters for a Manager.
type Stats struct {
	Broadcasts    uint64
	Delivered     uint64
	Handled       uint64
	HandlerErrors uint64
	HandlerPanics uint64
}

// Manager is the process-wide broker: it owns the subscriber list and fans
// broadcast events out to every subscriber except (by default) the event's
// own source.
//
// A Manager is constructed once at startup and passed by reference into
// everything that needs the bus; there is no package-level instance. The
// subscriber list is guarded by the Manager's own mutex, independent of any
// component's state lock, because Broadcast is reachable from worker
// goroutines while Subscribe runs on the main goroutine during tree
// construction.
type Manager struct {
	mu     sync.Mutex
	subs   []Subscriber
	log    *logging.Logger
	strict bool

	broadcasts    atomic.Uint64
	delivered     atomic.Uint64
	handled       atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// ManagerOption configures a Manager at construction time.
type ManagerOption func(*Manager)

// WithStrictQueries controls how Ask treats a broken single-responder
// contract. Strict (the default) returns ErrNoResponder or
// ErrMultipleResponders; relaxed logs the violation and returns nil,
// leaving the caller to notice the missing response itself.
func WithStrictQueries(strict bool) ManagerOption {
	return func(m *Manager) { m.strict = strict }
}

// NewManager creates a Manager. A nil logger falls back to a no-op logger.
func NewManager(log *logging.Logger, opts ...ManagerOption) *Manager {
	if log == nil {
		log = logging.NopLogger()
	}
	m := &Manager{log: log, strict: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe appends sub to the subscriber list. Subscribers receive every
// subsequent broadcast, in registration order, for the lifetime of the
// Manager; there is no individual unsubscribe.
//
// Subscribing the same subscriber twice is a lifecycle error.
func (m *Manager) Subscribe(sub Subscriber) error {
	if sub == nil {
		return errors.NewEventError("subscribe", errors.ErrNilSubscriber)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.subs {
		if existing == sub {
			return errors.NewEventError("subscribe", errors.ErrAlreadySubscribed)
		}
	}
	m.subs = append(m.subs, sub)
	return nil
}

// SubscriberCount returns the number of registered subscribers.
func (m *Manager) SubscriberCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Broadcast delivers ev synchronously to every subscriber in registration
// order, skipping ev's own source unless the event overrides suppression.
// A handler error or panic is logged and does not stop delivery to the
// remaining subscribers.
//
// Fan-out runs on a snapshot of the subscriber list taken under the lock,
// so handlers may subscribe or broadcast reentrantly.
func (m *Manager) Broadcast(ev *Event) Delivery {
	if ev == nil {
		return Delivery{}
	}

	m.mu.Lock()
	snapshot := make([]Subscriber, len(m.subs))
	copy(snapshot, m.subs)
	m.mu.Unlock()

	m.broadcasts.Add(1)

	var d Delivery
	for _, sub := range snapshot {
		if sub == ev.source && !ev.deliverToSource {
			continue
		}

		res, err := m.deliver(sub, ev)
		d.Delivered++
		m.delivered.Add(1)
		if res.Handled {
			d.Handled++
			m.handled.Add(1)
		}
		if err != nil {
			d.Errors++
			m.handlerErrors.Add(1)
			m.log.WithEvent(ev.name).Error("event handler failed",
				"error", err.Error())
		}
	}
	return d
}

// Ask broadcasts a query event and enforces the single-responder contract:
// exactly one subscriber must write a response before its handler returns.
// The caller reads the response from the query descriptor immediately after
// Ask returns nil.
//
// Ask returns ErrNotQuery for events not built by a [Query], ErrNoResponder
// when no handler answered, and ErrMultipleResponders when more than one
// did (the last response written wins, but the result is untrustworthy).
// Under WithStrictQueries(false) the two contract violations are logged
// instead of returned; ErrNotQuery is a programming error and stays an
// error either way.
func (m *Manager) Ask(ev *Event) error {
	if ev == nil {
		return errors.NewEventError("ask", errors.ErrNotQuery)
	}
	counter, ok := ev.payload.(responseCounter)
	if !ok {
		return errors.NewEventError("ask", errors.ErrNotQuery).WithEvent(ev.name)
	}

	m.Broadcast(ev)

	switch n := counter.responseCount(); {
	case n == 0:
		if !m.strict {
			m.log.WithEvent(ev.name).Warn("query had no responder")
			return nil
		}
		return errors.NewEventError("ask", errors.ErrNoResponder).WithEvent(ev.name)
	case n > 1:
		if !m.strict {
			m.log.WithEvent(ev.name).Warn("query had multiple responders", "responders", n)
			return nil
		}
		return errors.NewEventError("ask", errors.ErrMultipleResponders).WithEvent(ev.name)
	}
	return nil
}

// deliver invokes one handler and converts a panic into an error so a
// panicking listener cannot take down the bus.
func (m *Manager) deliver(sub Subscriber, ev *Event) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.handlerPanics.Add(1)
			err = errors.NewEventError("delivery", errors.ErrHandlerPanicked).WithEvent(ev.name)
			m.log.WithEvent(ev.name).Error("event handler panicked",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	return sub.HandleEvent(ev)
}

// Stats returns cumulative delivery counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Broadcasts:    m.broadcasts.Load(),
		Delivered:     m.delivered.Load(),
		Handled:       m.handled.Load(),
		HandlerErrors: m.handlerErrors.Load(),
		HandlerPanics: m.handlerPanics.Load(),
	}
}

// Deinit clears the subscriber list. It does not deinitialize the
// subscribed components themselves; that is the registry's job.
func (m *Manager) Deinit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = nil
}
