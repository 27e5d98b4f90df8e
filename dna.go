package dna

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hcdna/dna-go/stablejson"
)

// New returns a descriptor with the current spec version and every other
// field at its zero value. It never fails.
func New() *Dna {
	return &Dna{DnaSpecVersion: CurrentSpecVersion}
}

// NewUnique returns New() with a freshly generated UUID, for tooling that
// scaffolds development descriptors.
func NewUnique() *Dna {
	d := New()
	d.UUID = uuid.NewString()
	return d
}

// ParseError reports that input text could not be parsed as a DNA document.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse dna: %s: %v", e.Reason, e.Err)
	}
	return "parse dna: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// FromJSON parses data as a DNA document. Recognized fields populate the
// typed struct, absent fields take schema defaults (an absent
// dna_spec_version reads back as CurrentSpecVersion), and unrecognized
// fields are preserved verbatim for round-tripping.
//
// It returns a *ParseError when data is not well-formed JSON or its top-level
// value is not an object; no descriptor is produced in that case.
func FromJSON(data []byte) (*Dna, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}
	// json.Unmarshal accepts a top-level "null" into a map without error.
	if raw == nil {
		return nil, &ParseError{Reason: "top-level value is not a JSON object"}
	}

	var d Dna
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &ParseError{Reason: "invalid DNA document", Err: err}
	}
	return &d, nil
}

// ToJSON renders the descriptor as a compact JSON object with bytewise-sorted
// keys, including inside preserved unknown fields. Repeated calls on an
// unchanged descriptor return byte-identical output, and the output is always
// parseable by FromJSON.
func (d *Dna) ToJSON() ([]byte, error) {
	return stablejson.Marshal(d)
}

// Equal reports whether d and other serialize to the same canonical bytes,
// which is the round-trip notion of observational equality.
func (d *Dna) Equal(other *Dna) bool {
	if d == nil || other == nil {
		return d == other
	}
	a, err := d.ToJSON()
	if err != nil {
		return false
	}
	b, err := other.ToJSON()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}
