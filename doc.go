// Package dna provides a Go SDK for DNA descriptor documents.
//
// A DNA descriptor is a named, versioned record describing an application
// package: its zomes, their capabilities and function declarations, and
// free-form properties. The SDK offers lossless JSON handling, preserving
// unknown fields for forward compatibility, plus deterministic serialization
// and shape-level validation.
//
// # Quick Start
//
//	d, err := dna.FromJSON(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(d.Name, d.DnaSpecVersion)
//	for _, z := range d.Zomes {
//	    fmt.Println(z.Name, len(z.Capabilities))
//	}
//
//	if err := d.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Lossless JSON (Forward Compatibility)
//
// Descriptor documents evolve; this SDK preserves every JSON field across an
// unmarshal → marshal cycle by storing unrecognized keys in
// UnknownFields.Unknown. If a key exists both as a typed field and in
// Unknown, the typed field wins during marshaling, since future schema revisions
// may claim keys that were previously unknown.
//
// # Versioning
//
// dna_spec_version tags which revision of the field layout a document
// conforms to. New() stamps CurrentSpecVersion; FromJSON preserves an
// explicit tag verbatim and treats an absent tag as current. Nothing is
// silently upgraded; Validate's options let tools demand currency.
//
// # Deterministic Serialization
//
// ToJSON produces compact, key-sorted bytes (see the stablejson subpackage),
// so serializing an unchanged descriptor twice yields identical text and
// FromJSON(ToJSON(d)) reproduces an observationally equal descriptor.
//
// # Ownership and Concurrency
//
// Descriptors are ordinary Go values with scoped ownership; there is nothing
// to free. Values are safe for concurrent reads; concurrent writes to the
// same value require external synchronization. Embedders that need an
// explicit create/release surface (host functions, FFI shims) should use the
// binding subpackage, where release is a consuming, checked operation.
//
// # Subpackages
//
//   - stablejson: deterministic compact JSON encoding
//   - binding: handle-based foreign-boundary surface with explicit release
//   - schema: JSON Schema generation for the document shape
package dna
