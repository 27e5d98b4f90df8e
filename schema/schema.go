// Package schema generates a JSON Schema for the DNA document shape, for
// editors and external validators that want machine-readable structure.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/hcdna/dna-go"
)

// Generate returns a JSON Schema (Draft 2020-12) describing the DNA
// descriptor document, reflected from the typed structs and indented for
// human consumption.
//
// The schema covers the typed fields only; unknown-field preservation means
// documents may legitimately carry additional properties, so generated
// schemas must not be read as closed.
func Generate() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(&dna.Dna{})

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: marshal: %w", err)
	}
	return out, nil
}
