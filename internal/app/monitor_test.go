package app

import (
	"strings"
	"testing"

	"github.com/cinder-flash/cinder/internal/event"
	"github.com/cinder-flash/cinder/internal/events"
	"github.com/cinder-flash/cinder/internal/logging"
)

func TestMonitorCounts(t *testing.T) {
	mgr := event.NewManager(logging.NopLogger())
	mon := NewMonitor(mgr, 10)
	if err := mon.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	mgr.Broadcast(events.DeviceAttached.New(nil, &events.DeviceAttachedData{}))
	mgr.Broadcast(events.DeviceAttached.New(nil, &events.DeviceAttachedData{}))
	mgr.Broadcast(events.ImageCleared.New(nil, &events.ImageClearedData{}))

	if got := mon.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
	if got := mon.Count(events.DeviceAttached.Name()); got != 2 {
		t.Errorf("Count(device.attached) = %d, want 2", got)
	}
	if got := mon.Count(events.ImageCleared.Name()); got != 1 {
		t.Errorf("Count(image.cleared) = %d, want 1", got)
	}
	if got := mon.Count("flash.started"); got != 0 {
		t.Errorf("Count(flash.started) = %d, want 0", got)
	}
}

func TestMonitorRecentRing(t *testing.T) {
	mgr := event.NewManager(logging.NopLogger())
	mon := NewMonitor(mgr, 2)
	if err := mon.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	mgr.Broadcast(events.DeviceAttached.New(nil, &events.DeviceAttachedData{}))
	mgr.Broadcast(events.ImageCleared.New(nil, &events.ImageClearedData{}))
	mgr.Broadcast(events.DeviceDetached.New(nil, &events.DeviceDetachedData{}))

	recent := mon.Recent()
	if len(recent) != 2 {
		t.Fatalf("Recent() has %d entries, want 2", len(recent))
	}
	if recent[0] != events.ImageCleared.Name() || recent[1] != events.DeviceDetached.Name() {
		t.Errorf("Recent() = %v, want oldest-first tail", recent)
	}
}

func TestMonitorDraw(t *testing.T) {
	mgr := event.NewManager(logging.NopLogger())
	mon := NewMonitor(mgr, 0)
	if err := mon.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	mgr.Broadcast(events.DeviceAttached.New(nil, &events.DeviceAttachedData{}))

	out := mon.Draw()
	if !strings.Contains(out, "events: 1") {
		t.Errorf("Draw() missing total: %q", out)
	}
	if !strings.Contains(out, "device.attached: 1") {
		t.Errorf("Draw() missing per-name count: %q", out)
	}
}
