// Package dict interns node names into compact integer identifiers.
//
// A [Dictionary] hands out identifiers in order of first sight, starting at
// zero, so identifiers can index dense slices. Identifiers are never removed
// or reused for the lifetime of the dictionary.
package dict

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownIdentifier is returned by [Dictionary.Resolve] when the identifier
// was never issued by the dictionary.
var ErrUnknownIdentifier = errors.New("unknown identifier")

// ID is an opaque identifier for an interned name.
type ID uint32

// String renders the identifier as its decimal value.
func (id ID) String() string { return fmt.Sprintf("%d", uint32(id)) }

// Dictionary is a bijective mapping between names and identifiers.
//
// The zero value is not usable - use New. Dictionary is safe for concurrent use.
type Dictionary struct {
	mu    sync.RWMutex
	ids   map[string]ID
	names []string
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{ids: make(map[string]ID)}
}

// Intern returns the identifier for name, allocating the next unused one if
// the name has not been seen before.
func (d *Dictionary) Intern(name string) ID {
	d.mu.RLock()
	id, ok := d.ids[name]
	d.mu.RUnlock()
	if ok {
		return id
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.ids[name]; ok {
		return id
	}
	id = ID(len(d.names))
	d.ids[name] = id
	d.names = append(d.names, name)
	return id
}

// Resolve returns the name behind id, or ErrUnknownIdentifier.
func (d *Dictionary) Resolve(id ID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if int(id) >= len(d.names) {
		return "", fmt.Errorf("%w: #%d", ErrUnknownIdentifier, id)
	}
	return d.names[id], nil
}

// Lookup returns the identifier for name without interning it.
func (d *Dictionary) Lookup(name string) (ID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.ids[name]
	return id, ok
}

// Contains reports whether id has been issued.
func (d *Dictionary) Contains(id ID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return int(id) < len(d.names)
}

// Len returns the number of interned names.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.names)
}

// Names returns all interned names ordered by identifier.
// The returned slice is a copy.
func (d *Dictionary) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}
