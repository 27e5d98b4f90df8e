package dna

import "encoding/json"

// Membrane controls who may invoke the functions a capability exposes.
type Membrane string

const (
	// MembranePublic allows any caller.
	MembranePublic Membrane = "public"
	// MembraneAgent restricts calls to the owning agent.
	MembraneAgent Membrane = "agent"
	// MembraneAPIKey requires a capability token.
	MembraneAPIKey Membrane = "api-key"
	// MembraneZome restricts calls to other zomes in the same DNA.
	MembraneZome Membrane = "zome"
)

// UnknownFields is embedded in every typed descriptor struct to preserve JSON
// fields that this SDK does not (yet) model. It is populated by UnmarshalJSON
// and included by MarshalJSON; typed fields win over colliding entries.
//
// Each lossless type requires a parallel wire struct for encoding. When adding
// fields to a typed struct, update both the public type and its wire counterpart.
type UnknownFields struct {
	// Unknown preserves unrecognized keys verbatim (forward-compat).
	Unknown map[string]json.RawMessage `json:"-"`
}

// Pre-computed known field sets for efficient lossless JSON unmarshaling.
var (
	knownDnaSet = knownSet(
		"dna_spec_version", "name", "description", "version", "uuid",
		"properties", "zomes",
	)
	knownZomeSet = knownSet(
		"name", "description", "config", "capabilities",
	)
	knownCapabilitySet = knownSet(
		"name", "membrane", "fn_declarations", "code",
	)
	knownFnDeclarationSet = knownSet(
		"name", "inputs", "outputs",
	)
)

// Dna is the DNA descriptor document shape.
type Dna struct {
	// DnaSpecVersion identifies which revision of the descriptor's field
	// layout this document conforms to. New() sets it to CurrentSpecVersion;
	// parsing preserves an explicit tag verbatim.
	DnaSpecVersion string `json:"dna_spec_version"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	UUID        string `json:"uuid,omitempty" validate:"omitempty,uuid"`

	// Properties is free-form application configuration attached to the DNA.
	Properties map[string]any `json:"properties,omitempty"`

	Zomes []Zome `json:"zomes,omitempty" validate:"dive"`

	UnknownFields
}

type dnaWire struct {
	DnaSpecVersion string `json:"dna_spec_version"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	UUID        string `json:"uuid,omitempty"`

	Properties map[string]any `json:"properties,omitempty"`

	Zomes []Zome `json:"zomes,omitempty"`
}

func (d *Dna) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var w dnaWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*d = Dna{
		DnaSpecVersion: w.DnaSpecVersion,
		Name:           w.Name,
		Description:    w.Description,
		Version:        w.Version,
		UUID:           w.UUID,
		Properties:     w.Properties,
		Zomes:          w.Zomes,
	}

	// An absent tag means the document predates tagging; it reads back at the
	// schema version this SDK writes. An explicit tag is never rewritten.
	if _, ok := raw["dna_spec_version"]; !ok {
		d.DnaSpecVersion = CurrentSpecVersion
	}

	d.Unknown = splitUnknown(raw, knownDnaSet)
	return nil
}

func (d Dna) MarshalJSON() ([]byte, error) {
	w := dnaWire{
		DnaSpecVersion: d.DnaSpecVersion,
		Name:           d.Name,
		Description:    d.Description,
		Version:        d.Version,
		UUID:           d.UUID,
		Properties:     d.Properties,
		Zomes:          d.Zomes,
	}
	return marshalWithUnknown(d.Unknown, w)
}

// Zome is a named bundle of capabilities within a DNA.
type Zome struct {
	Name         string       `json:"name" validate:"required"`
	Description  string       `json:"description,omitempty"`
	Config       ZomeConfig   `json:"config"`
	Capabilities []Capability `json:"capabilities,omitempty" validate:"dive"`

	UnknownFields
}

type zomeWire struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Config       ZomeConfig   `json:"config"`
	Capabilities []Capability `json:"capabilities,omitempty"`
}

func (z *Zome) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var w zomeWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*z = Zome{
		Name:         w.Name,
		Description:  w.Description,
		Config:       w.Config,
		Capabilities: w.Capabilities,
	}

	z.Unknown = splitUnknown(raw, knownZomeSet)
	return nil
}

func (z Zome) MarshalJSON() ([]byte, error) {
	w := zomeWire{
		Name:         z.Name,
		Description:  z.Description,
		Config:       z.Config,
		Capabilities: z.Capabilities,
	}
	return marshalWithUnknown(z.Unknown, w)
}

// ZomeConfig holds per-zome execution settings.
type ZomeConfig struct {
	ErrorHandling string `json:"error_handling,omitempty" validate:"omitempty,oneof=throw-errors return-errors"`
}

// Capability is a membrane-guarded group of zome functions.
type Capability struct {
	Name           string          `json:"name" validate:"required"`
	Membrane       Membrane        `json:"membrane,omitempty" validate:"omitempty,oneof=public agent api-key zome"`
	FnDeclarations []FnDeclaration `json:"fn_declarations,omitempty" validate:"dive"`
	Code           *CodeBlock      `json:"code,omitempty"`

	UnknownFields
}

type capabilityWire struct {
	Name           string          `json:"name"`
	Membrane       Membrane        `json:"membrane,omitempty"`
	FnDeclarations []FnDeclaration `json:"fn_declarations,omitempty"`
	Code           *CodeBlock      `json:"code,omitempty"`
}

func (c *Capability) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var w capabilityWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*c = Capability{
		Name:           w.Name,
		Membrane:       w.Membrane,
		FnDeclarations: w.FnDeclarations,
		Code:           w.Code,
	}

	c.Unknown = splitUnknown(raw, knownCapabilitySet)
	return nil
}

func (c Capability) MarshalJSON() ([]byte, error) {
	w := capabilityWire{
		Name:           c.Name,
		Membrane:       c.Membrane,
		FnDeclarations: c.FnDeclarations,
		Code:           c.Code,
	}
	return marshalWithUnknown(c.Unknown, w)
}

// CodeBlock carries the executable payload of a capability, either inline
// source or encoded bytecode. The SDK treats it as opaque text.
type CodeBlock struct {
	Code string `json:"code"`
}

// FnDeclaration declares a callable function's signature.
type FnDeclaration struct {
	Name    string        `json:"name" validate:"required"`
	Inputs  []FnParameter `json:"inputs,omitempty"`
	Outputs []FnParameter `json:"outputs,omitempty"`

	UnknownFields
}

type fnDeclarationWire struct {
	Name    string        `json:"name"`
	Inputs  []FnParameter `json:"inputs,omitempty"`
	Outputs []FnParameter `json:"outputs,omitempty"`
}

func (f *FnDeclaration) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var w fnDeclarationWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*f = FnDeclaration{
		Name:    w.Name,
		Inputs:  w.Inputs,
		Outputs: w.Outputs,
	}

	f.Unknown = splitUnknown(raw, knownFnDeclarationSet)
	return nil
}

func (f FnDeclaration) MarshalJSON() ([]byte, error) {
	w := fnDeclarationWire{
		Name:    f.Name,
		Inputs:  f.Inputs,
		Outputs: f.Outputs,
	}
	return marshalWithUnknown(f.Unknown, w)
}

// FnParameter is a name/type pair in a function signature.
type FnParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
