package events

import (
	"strings"
	"testing"

	"github.com/cinder-flash/cinder/internal/event"
)

func TestCatalogBuilds(t *testing.T) {
	c, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if c.Len() != len(Names()) {
		t.Errorf("catalog holds %d names, want %d", c.Len(), len(Names()))
	}
}

func TestCatalogSize(t *testing.T) {
	// The collision property below is only meaningful over a
	// representative catalog.
	if got := len(Names()); got < 30 {
		t.Errorf("catalog has %d names; a representative catalog needs at least 30", got)
	}
}

func TestHashesPairwiseDistinct(t *testing.T) {
	names := Names()
	seen := make(map[event.Hash]string, len(names))

	for _, name := range names {
		h := event.HashName(name)
		if prev, ok := seen[h]; ok {
			t.Errorf("hash collision: %q and %q both hash to %#x", prev, name, uint64(h))
		}
		seen[h] = name
	}
}

func TestNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range Names() {
		if seen[name] {
			t.Errorf("duplicate name in catalog: %q", name)
		}
		seen[name] = true
	}
}

func TestNamingConvention(t *testing.T) {
	// Dotted category.action names, lowercase with underscores.
	for _, name := range Names() {
		parts := strings.Split(name, ".")
		if len(parts) != 2 {
			t.Errorf("name %q is not category.action", name)
			continue
		}
		for _, part := range parts {
			if part == "" || part != strings.ToLower(part) {
				t.Errorf("name %q is not lowercase category.action", name)
			}
		}
	}
}

func TestDefinitionsMatchCatalog(t *testing.T) {
	// Spot-check that definitions round-trip through the catalog's hashes.
	c, err := Catalog()
	if err != nil {
		t.Fatal(err)
	}

	name, ok := c.Lookup(FlashProgress.Hash())
	if !ok || name != "flash.progress" {
		t.Errorf("Lookup(FlashProgress.Hash()) = %q, %v", name, ok)
	}

	name, ok = c.Lookup(DeviceQuerySelected.Hash())
	if !ok || name != "device.query_selected" {
		t.Errorf("Lookup(DeviceQuerySelected.Hash()) = %q, %v", name, ok)
	}
}

func TestDiscoverFinishedRoundTrip(t *testing.T) {
	data := &DeviceDiscoverFinishedData{
		Devices: []Device{{Path: "/dev/disk4", Name: "SanDisk Ultra", SizeBytes: 32 << 30, Removable: true}},
	}
	ev := DeviceDiscoverFinished.New(nil, data).WithSelfDelivery()

	got, ok := DeviceDiscoverFinished.Data(ev)
	if !ok {
		t.Fatal("Data should succeed")
	}
	if len(got.Devices) != 1 || got.Devices[0].Path != "/dev/disk4" {
		t.Errorf("devices = %+v", got.Devices)
	}
	if !ev.SelfDelivery() {
		t.Error("worker results should carry the self-delivery override")
	}
}
