package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cinder-flash/cinder/internal/component"
	"github.com/cinder-flash/cinder/internal/event"
)

// monitorState is the Monitor's guarded payload.
type monitorState struct {
	total  uint64
	byName map[string]uint64
	recent []string
}

// Monitor subscribes to the event manager and keeps per-name delivery
// counts plus a bounded ring of recent event names. The status screen
// draws it; nothing else reads it.
type Monitor struct {
	component.Base

	events *event.Manager
	state  *component.State[monitorState]
	limit  int
}

// NewMonitor creates a Monitor. limit caps the recent-event ring; zero or
// negative disables it.
func NewMonitor(events *event.Manager, limit int) *Monitor {
	return &Monitor{
		events: events,
		state: component.NewState(monitorState{
			byName: make(map[string]uint64),
		}),
		limit: limit,
	}
}

// Start subscribes the monitor to the event manager.
func (m *Monitor) Start() error {
	return m.events.Subscribe(m)
}

// HandleEvent records every delivery. The monitor recognizes all events,
// so it always reports Handled.
func (m *Monitor) HandleEvent(ev *event.Event) (event.Result, error) {
	m.state.With(func(st *monitorState) {
		st.total++
		st.byName[ev.Name()]++
		if m.limit > 0 {
			st.recent = append(st.recent, ev.Name())
			if len(st.recent) > m.limit {
				st.recent = st.recent[len(st.recent)-m.limit:]
			}
		}
	})
	return event.Result{Handled: true}, nil
}

// Total returns the number of events observed so far.
func (m *Monitor) Total() uint64 {
	st := m.state.Lock()
	defer m.state.Unlock()
	return st.total
}

// Count returns the number of deliveries observed for one event name.
func (m *Monitor) Count(name string) uint64 {
	st := m.state.Lock()
	defer m.state.Unlock()
	return st.byName[name]
}

// Recent returns a copy of the recent-event ring, oldest first.
func (m *Monitor) Recent() []string {
	st := m.state.Lock()
	defer m.state.Unlock()
	out := make([]string, len(st.recent))
	copy(out, st.recent)
	return out
}

// Draw renders the per-name counts sorted by name, one per line, with a
// total header.
func (m *Monitor) Draw() string {
	st := m.state.Lock()
	names := make([]string, 0, len(st.byName))
	for name := range st.byName {
		names = append(names, name)
	}
	counts := make(map[string]uint64, len(st.byName))
	for name, n := range st.byName {
		counts[name] = n
	}
	total := st.total
	m.state.Unlock()

	sort.Strings(names)
	var sb strings.Builder
	fmt.Fprintf(&sb, "events: %d", total)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n  %s: %d", name, counts[name])
	}
	return sb.String()
}
