// Package binding exposes the DNA descriptor through an explicit handle
// surface for embedders that cannot hold Go pointers: host-function shims,
// FFI layers, plugin runtimes. Handles are issued and consumed by a Table;
// regular Go callers should use the dna package directly and let scoped
// ownership do the work.
//
// Release consumes a handle. Unlike a raw foreign binding, where touching a
// freed descriptor is undefined behavior, every operation on a released or
// never-issued handle fails with a checked error.
package binding

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hcdna/dna-go"
)

var (
	// ErrInvalidHandle reports a handle this table never issued.
	ErrInvalidHandle = errors.New("binding: invalid handle")
	// ErrReleased reports a handle that was valid but has been released.
	ErrReleased = errors.New("binding: descriptor already released")
)

// Handle identifies a live descriptor owned by a Table. The zero Handle is
// never issued and is returned alongside errors.
type Handle uint64

// Table owns descriptors on behalf of a foreign caller. It is safe for
// concurrent use; individual descriptors follow the dna package's
// single-writer rule.
type Table struct {
	mu   sync.Mutex
	next Handle
	live map[Handle]*dna.Dna
}

// NewTable returns an empty handle table.
func NewTable() *Table {
	return &Table{next: 1, live: map[Handle]*dna.Dna{}}
}

// CreateDefault stores a fresh default descriptor and returns its handle.
func (t *Table) CreateDefault() Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.storeLocked(dna.New())
}

// CreateFromJSON parses text as a DNA document and stores the result.
// On parse failure no handle is issued and the table is unchanged.
func (t *Table) CreateFromJSON(text string) (Handle, error) {
	d, err := dna.FromJSON([]byte(text))
	if err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.storeLocked(d), nil
}

// ToJSON serializes the descriptor behind h. The returned string is an
// ordinary Go value; there is no release-string operation at this boundary.
func (t *Table) ToJSON(h Handle) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, err := t.lookupLocked(h)
	if err != nil {
		return "", err
	}
	out, err := d.ToJSON()
	if err != nil {
		return "", fmt.Errorf("binding: serialize descriptor: %w", err)
	}
	return string(out), nil
}

// GetName returns the descriptor's name, empty when unset.
func (t *Table) GetName(h Handle) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, err := t.lookupLocked(h)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// SetName replaces the descriptor's name unconditionally; any string is
// accepted, including empty. The spec version tag is unaffected.
func (t *Table) SetName(h Handle, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, err := t.lookupLocked(h)
	if err != nil {
		return err
	}
	d.Name = name
	return nil
}

// GetSpecVersion returns the descriptor's schema version tag. There is no
// setter: the tag is derived from the schema, never from callers.
func (t *Table) GetSpecVersion(h Handle) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, err := t.lookupLocked(h)
	if err != nil {
		return "", err
	}
	return d.DnaSpecVersion, nil
}

// Release consumes h. Releasing twice, or using h afterwards, returns
// ErrReleased.
func (t *Table) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.lookupLocked(h); err != nil {
		return err
	}
	delete(t.live, h)
	return nil
}

// Len reports how many descriptors are currently live.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

func (t *Table) storeLocked(d *dna.Dna) Handle {
	h := t.next
	t.next++
	t.live[h] = d
	return h
}

// lookupLocked distinguishes never-issued handles from released ones: handles
// are issued monotonically from 1, so anything below next was once live.
func (t *Table) lookupLocked(h Handle) (*dna.Dna, error) {
	if d, ok := t.live[h]; ok {
		return d, nil
	}
	if h == 0 || h >= t.next {
		return nil, ErrInvalidHandle
	}
	return nil, ErrReleased
}
