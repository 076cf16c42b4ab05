package event

import (
	"testing"

	"github.com/cinder-flash/cinder/internal/errors"
)

type selectedDeviceRequest struct{}

type selectedDeviceResponse struct {
	Path string
	Size int64
}

var querySelected = DefineQuery[selectedDeviceRequest, selectedDeviceResponse]("device.query_selected")

// answeringSubscriber responds to querySelected with a fixed device.
type answeringSubscriber struct {
	resp selectedDeviceResponse
}

func (s *answeringSubscriber) HandleEvent(ev *Event) (Result, error) {
	if _, ok := querySelected.Request(ev); !ok {
		return Result{}, nil
	}
	if err := querySelected.Respond(ev, s.resp); err != nil {
		return Result{Handled: true}, err
	}
	return Result{Handled: true, Responded: true}, nil
}

func TestAskSingleResponder(t *testing.T) {
	// Scenario: X builds a query, Y's handler matches the hash and writes
	// the result; the result is fully populated as soon as Ask returns.
	m := NewManager(nil)
	x := &recordingSubscriber{}
	y := &answeringSubscriber{resp: selectedDeviceResponse{Path: "/dev/disk4", Size: 32 << 30}}

	if err := m.Subscribe(x); err != nil {
		t.Fatal(err)
	}
	if err := m.Subscribe(y); err != nil {
		t.Fatal(err)
	}

	ev := querySelected.New(x, selectedDeviceRequest{})
	if err := m.Ask(ev); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	resp, ok := querySelected.Response(ev)
	if !ok {
		t.Fatal("Response should be available after Ask")
	}
	if resp.Path != "/dev/disk4" {
		t.Errorf("Path = %q, want %q", resp.Path, "/dev/disk4")
	}
	if resp.Size != 32<<30 {
		t.Errorf("Size = %d", resp.Size)
	}
}

func TestAskNoResponder(t *testing.T) {
	m := NewManager(nil)
	if err := m.Subscribe(&recordingSubscriber{}); err != nil {
		t.Fatal(err)
	}

	ev := querySelected.New(nil, selectedDeviceRequest{})
	err := m.Ask(ev)
	if !errors.Is(err, errors.ErrNoResponder) {
		t.Errorf("expected ErrNoResponder, got %v", err)
	}

	if _, ok := querySelected.Response(ev); ok {
		t.Error("Response should not be available without a responder")
	}
}

func TestAskMultipleResponders(t *testing.T) {
	m := NewManager(nil)
	y1 := &answeringSubscriber{resp: selectedDeviceResponse{Path: "/dev/disk4"}}
	y2 := &answeringSubscriber{resp: selectedDeviceResponse{Path: "/dev/disk5"}}

	if err := m.Subscribe(y1); err != nil {
		t.Fatal(err)
	}
	if err := m.Subscribe(y2); err != nil {
		t.Fatal(err)
	}

	ev := querySelected.New(nil, selectedDeviceRequest{})
	err := m.Ask(ev)
	if !errors.Is(err, errors.ErrMultipleResponders) {
		t.Errorf("expected ErrMultipleResponders, got %v", err)
	}

	if _, ok := querySelected.Response(ev); ok {
		t.Error("Response should be rejected when two handlers raced to answer")
	}
}

func TestAskRelaxedQueries(t *testing.T) {
	t.Run("no responder", func(t *testing.T) {
		m := NewManager(nil, WithStrictQueries(false))
		if err := m.Subscribe(&recordingSubscriber{}); err != nil {
			t.Fatal(err)
		}

		ev := querySelected.New(nil, selectedDeviceRequest{})
		if err := m.Ask(ev); err != nil {
			t.Errorf("relaxed Ask with no responder = %v, want nil", err)
		}
		if _, ok := querySelected.Response(ev); ok {
			t.Error("Response should still be unavailable without a responder")
		}
	})

	t.Run("multiple responders", func(t *testing.T) {
		m := NewManager(nil, WithStrictQueries(false))
		y1 := &answeringSubscriber{resp: selectedDeviceResponse{Path: "/dev/disk4"}}
		y2 := &answeringSubscriber{resp: selectedDeviceResponse{Path: "/dev/disk5"}}
		if err := m.Subscribe(y1); err != nil {
			t.Fatal(err)
		}
		if err := m.Subscribe(y2); err != nil {
			t.Fatal(err)
		}

		ev := querySelected.New(nil, selectedDeviceRequest{})
		if err := m.Ask(ev); err != nil {
			t.Errorf("relaxed Ask with two responders = %v, want nil", err)
		}
		if _, ok := querySelected.Response(ev); ok {
			t.Error("Response should still be rejected when two handlers answered")
		}
	})

	t.Run("plain event stays an error", func(t *testing.T) {
		m := NewManager(nil, WithStrictQueries(false))

		err := m.Ask(pingEvent.New(nil, &pingData{}))
		if !errors.Is(err, errors.ErrNotQuery) {
			t.Errorf("expected ErrNotQuery, got %v", err)
		}
	})
}

func TestAskPlainEvent(t *testing.T) {
	m := NewManager(nil)

	err := m.Ask(pingEvent.New(nil, &pingData{}))
	if !errors.Is(err, errors.ErrNotQuery) {
		t.Errorf("expected ErrNotQuery, got %v", err)
	}
}

func TestAskNilEvent(t *testing.T) {
	m := NewManager(nil)

	err := m.Ask(nil)
	if !errors.Is(err, errors.ErrNotQuery) {
		t.Errorf("expected ErrNotQuery, got %v", err)
	}
}

func TestQueryRequestHashMismatch(t *testing.T) {
	ev := pingEvent.New(nil, &pingData{})

	if _, ok := querySelected.Request(ev); ok {
		t.Error("Request should fail on a hash mismatch")
	}
}

func TestQueryRespondMismatchedEvent(t *testing.T) {
	ev := pingEvent.New(nil, &pingData{})

	err := querySelected.Respond(ev, selectedDeviceResponse{})
	if !errors.Is(err, errors.ErrNotQuery) {
		t.Errorf("expected ErrNotQuery, got %v", err)
	}
}

func TestQueryCarriesRequestData(t *testing.T) {
	type sizeRequest struct{ MinBytes int64 }
	type sizeResponse struct{ Count int }
	q := DefineQuery[sizeRequest, sizeResponse]("device.query_by_size")

	ev := q.New(nil, sizeRequest{MinBytes: 8 << 30})

	req, ok := q.Request(ev)
	if !ok {
		t.Fatal("Request should succeed on the query's own event")
	}
	if req.MinBytes != 8<<30 {
		t.Errorf("MinBytes = %d", req.MinBytes)
	}
}
