package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	out, err := Generate()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "schema should describe the document's properties")

	for _, key := range []string{"dna_spec_version", "name", "zomes"} {
		assert.Contains(t, props, key)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate()
	require.NoError(t, err)
	second, err := Generate()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
