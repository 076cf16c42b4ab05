package event

import (
	"sort"

	"github.com/cinder-flash/cinder/internal/errors"
)

// Catalog is a registry of event names and their hashes. The application
// registers its full event set into one Catalog at startup so that
// duplicate names and hash collisions — which would silently misroute
// messages — are caught as errors instead.
type Catalog struct {
	names  map[string]Hash
	hashes map[Hash]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		names:  make(map[string]Hash),
		hashes: make(map[Hash]string),
	}
}

// Register adds a name to the catalog. It returns ErrDuplicateName if the
// name was already registered, and ErrHashCollision if a distinct name
// hashes to the same value.
func (c *Catalog) Register(name string) error {
	h := HashName(name)

	if _, ok := c.names[name]; ok {
		return errors.NewEventError("register", errors.ErrDuplicateName).WithEvent(name)
	}
	if existing, ok := c.hashes[h]; ok {
		return errors.NewEventError("register: collides with "+existing, errors.ErrHashCollision).
			WithEvent(name)
	}

	c.names[name] = h
	c.hashes[h] = name
	return nil
}

// Lookup returns the name registered for the given hash.
func (c *Catalog) Lookup(h Hash) (string, bool) {
	name, ok := c.hashes[h]
	return name, ok
}

// Contains reports whether the name is registered.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Len returns the number of registered names.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Names returns all registered names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
