package dna

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type validateOptions struct {
	rejectUnknownFields         bool
	requireSupportedSpecVersion bool
	requireCurrentSpecVersion   bool
}

// ValidateOption configures Dna.Validate.
type ValidateOption func(*validateOptions)

// WithRejectUnknownFields treats unrecognized fields in typed descriptor
// objects as errors. Default behavior is forward-compatible (unknowns are
// preserved and allowed), so this is an opt-in "strict" mode.
func WithRejectUnknownFields() ValidateOption {
	return func(o *validateOptions) { o.rejectUnknownFields = true }
}

// WithRequireSupportedSpecVersion requires dna_spec_version to be within the
// SDK's supported range. By default tags outside the range are allowed for
// forward compatibility.
func WithRequireSupportedSpecVersion() ValidateOption {
	return func(o *validateOptions) { o.requireSupportedSpecVersion = true }
}

// WithRequireCurrentSpecVersion requires dna_spec_version to be exactly
// CurrentSpecVersion. Tools use this to force an explicit migration step for
// legacy documents instead of silently upgrading them.
func WithRequireCurrentSpecVersion() ValidateOption {
	return func(o *validateOptions) { o.requireCurrentSpecVersion = true }
}

// fieldValidate is a package-level singleton; constructing a validator is
// expensive and the instance caches struct metadata.
var fieldValidate = validator.New()

// Validate performs shape-level checks useful for tooling correctness.
// It is read-only and never mutates the descriptor.
func (d Dna) Validate(opts ...ValidateOption) error {
	var o validateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var errs []string

	if strings.TrimSpace(d.DnaSpecVersion) == "" {
		errs = append(errs, "dna_spec_version: required")
	} else if _, err := parseSpecTag(d.DnaSpecVersion); err != nil {
		errs = append(errs, "dna_spec_version: must be MAJOR.MINOR (e.g. 2.0)")
	} else {
		if o.requireSupportedSpecVersion {
			ok, err := IsSupportedSpecVersion(d.DnaSpecVersion)
			if err != nil {
				errs = append(errs, fmt.Sprintf("dna_spec_version: %v", err))
			} else if !ok {
				errs = append(errs, fmt.Sprintf("dna_spec_version: unsupported version %q (supported %s-%s)",
					d.DnaSpecVersion, OldestSupportedSpecVersion, CurrentSpecVersion))
			}
		}
		if o.requireCurrentSpecVersion && !IsCurrentSpecVersion(d.DnaSpecVersion) {
			errs = append(errs, fmt.Sprintf("dna_spec_version: must be %q (got %q)", CurrentSpecVersion, d.DnaSpecVersion))
		}
	}

	// Field-level constraints (required names, membrane enum, uuid format)
	// are expressed as validate tags on the types.
	if err := fieldValidate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Sprintf("%s: failed %q constraint", fieldErrPath(fe), fe.Tag()))
			}
		} else {
			errs = append(errs, fmt.Sprintf("field validation: %v", err))
		}
	}

	// Zome names must be unique within a DNA; capability names within a zome.
	seenZomes := map[string]struct{}{}
	for zi, z := range d.Zomes {
		if z.Name != "" {
			if _, dup := seenZomes[z.Name]; dup {
				errs = append(errs, fmt.Sprintf("zomes[%d].name: duplicate zome name %q", zi, z.Name))
			}
			seenZomes[z.Name] = struct{}{}
		}

		seenCaps := map[string]struct{}{}
		for ci, c := range z.Capabilities {
			if c.Name == "" {
				continue
			}
			if _, dup := seenCaps[c.Name]; dup {
				errs = append(errs, fmt.Sprintf("zomes[%d].capabilities[%d].name: duplicate capability name %q", zi, ci, c.Name))
			}
			seenCaps[c.Name] = struct{}{}
		}

		if o.rejectUnknownFields {
			appendUnknownFieldProblems(&errs, fmt.Sprintf("zomes[%d]", zi), z.Unknown)
			for ci, c := range z.Capabilities {
				appendUnknownFieldProblems(&errs, fmt.Sprintf("zomes[%d].capabilities[%d]", zi, ci), c.Unknown)
				for fi, fn := range c.FnDeclarations {
					appendUnknownFieldProblems(&errs, fmt.Sprintf("zomes[%d].capabilities[%d].fn_declarations[%d]", zi, ci, fi), fn.Unknown)
				}
			}
		}
	}

	if o.rejectUnknownFields {
		appendUnknownFieldProblems(&errs, "", d.Unknown)
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Problems: errs}
}

// fieldErrPath rewrites a validator namespace like "Dna.Zomes[0].Name" into
// the document path "zomes[0].name".
func fieldErrPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		idx := ""
		if j := strings.IndexByte(p, '['); j >= 0 {
			idx = p[j:]
			p = p[:j]
		}
		parts[i] = fieldJSONName(p) + idx
	}
	return strings.Join(parts, ".")
}

// fieldJSONName maps exported field names to their JSON keys. The handful of
// tagged fields makes a table cheaper than reflection.
func fieldJSONName(field string) string {
	switch field {
	case "UUID":
		return "uuid"
	case "FnDeclarations":
		return "fn_declarations"
	case "ErrorHandling":
		return "error_handling"
	default:
		return strings.ToLower(field)
	}
}

func appendUnknownFieldProblems(errs *[]string, prefix string, unknown map[string]json.RawMessage) {
	if len(unknown) == 0 {
		return
	}
	keys := make([]string, 0, len(unknown))
	for k := range unknown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if prefix == "" {
		*errs = append(*errs, fmt.Sprintf("unknown fields: %s", strings.Join(keys, ", ")))
		return
	}
	*errs = append(*errs, fmt.Sprintf("%s: unknown fields: %s", prefix, strings.Join(keys, ", ")))
}

// ValidationError is a deterministic, multi-problem validation error.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid dna"
	}
	return "invalid dna: " + strings.Join(e.Problems, "; ")
}
