package dna

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_Defaults(t *testing.T) {
	d := New()

	assert.Equal(t, CurrentSpecVersion, d.DnaSpecVersion)
	assert.Equal(t, "2.0", d.DnaSpecVersion)
	assert.Empty(t, d.Name)
	assert.Empty(t, d.Description)
	assert.Empty(t, d.Version)
	assert.Empty(t, d.UUID)
	assert.Nil(t, d.Properties)
	assert.Nil(t, d.Zomes)
	assert.Nil(t, d.Unknown)
}

func TestNewUnique_GeneratesUUID(t *testing.T) {
	a := NewUnique()
	b := NewUnique()

	require.NotEmpty(t, a.UUID)
	require.NotEmpty(t, b.UUID)
	assert.NotEqual(t, a.UUID, b.UUID)
	assert.Equal(t, CurrentSpecVersion, a.DnaSpecVersion)
}

func TestSetThenRead(t *testing.T) {
	d := New()
	d.Name = "test"

	assert.Equal(t, "test", d.Name)
	assert.Equal(t, CurrentSpecVersion, d.DnaSpecVersion, "setting the name must not touch the spec version")
}

func TestFromJSON_ParseThenRead(t *testing.T) {
	d, err := FromJSON([]byte(`{"name":"test"}`))
	require.NoError(t, err)

	assert.Equal(t, "test", d.Name)
	assert.Equal(t, CurrentSpecVersion, d.DnaSpecVersion, "absent dna_spec_version reads back as the current version")
}

func TestFromJSON_MissingSpecVersion(t *testing.T) {
	// Pins the policy for untagged documents: they read back at the current
	// schema version rather than a legacy or sentinel tag.
	d, err := FromJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, CurrentSpecVersion, d.DnaSpecVersion)
}

func TestFromJSON_PreservesExplicitOldTag(t *testing.T) {
	d, err := FromJSON([]byte(`{"dna_spec_version":"1.0","name":"legacy"}`))
	require.NoError(t, err)

	assert.Equal(t, "1.0", d.DnaSpecVersion, "an explicit tag is never rewritten")

	out, err := d.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"dna_spec_version":"1.0"`)
}

func TestFromJSON_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "not json"},
		{name: "empty", input: ""},
		{name: "top-level array", input: `[1,2,3]`},
		{name: "top-level string", input: `"dna"`},
		{name: "top-level number", input: `42`},
		{name: "top-level null", input: `null`},
		{name: "truncated object", input: `{"name":"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FromJSON([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, d, "no descriptor may be produced on parse failure")

			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestFromJSON_UnknownFieldTolerance(t *testing.T) {
	d, err := FromJSON([]byte(`{"name":"x","future_field":123}`))
	require.NoError(t, err)

	assert.Equal(t, "x", d.Name)
	require.Contains(t, d.Unknown, "future_field")
	assert.JSONEq(t, `123`, string(d.Unknown["future_field"]))
}

func TestToJSON_Idempotent(t *testing.T) {
	d, err := FromJSON([]byte(`{"name":"x","future_field":{"b":1,"a":2},"zomes":[{"name":"z","config":{}}]}`))
	require.NoError(t, err)

	first, err := d.ToJSON()
	require.NoError(t, err)
	second, err := d.ToJSON()
	require.NoError(t, err)

	assert.Equal(t, first, second, "consecutive serializations must be byte-identical")
}

func TestToJSON_AlwaysIncludesRequiredKeys(t *testing.T) {
	out, err := New().ToJSON()
	require.NoError(t, err)

	assert.Contains(t, string(out), `"dna_spec_version":"2.0"`)
	assert.Contains(t, string(out), `"name":""`)
}

func TestRoundTrip_Identity(t *testing.T) {
	docs := []string{
		`{"name":"test"}`,
		`{"dna_spec_version":"2.0","name":"app","description":"a test app","version":"0.0.1"}`,
		`{"dna_spec_version":"1.0","uuid":"8ed84a02-a713-4c9f-ab5e-2e8d0d1a3c04"}`,
		`{"name":"x","future_field":123,"nested_unknown":{"z":1,"a":[true,null]}}`,
		`{"properties":{"language":"en","weight":1.5}}`,
		`{"zomes":[{"name":"main","config":{"error_handling":"throw-errors"},"capabilities":[{"name":"web_gateway","membrane":"public","fn_declarations":[{"name":"greet","inputs":[{"name":"who","type":"string"}],"outputs":[{"name":"greeting","type":"string"}]}],"code":{"code":"AAECAw=="}}]}]}`,
	}

	for _, doc := range docs {
		d, err := FromJSON([]byte(doc))
		require.NoError(t, err, doc)

		out, err := d.ToJSON()
		require.NoError(t, err, doc)

		d2, err := FromJSON(out)
		require.NoError(t, err, doc)

		assert.Equal(t, d.Name, d2.Name)
		assert.Equal(t, d.DnaSpecVersion, d2.DnaSpecVersion)
		assert.True(t, d.Equal(d2), "round-trip must reproduce an observationally equal descriptor for %s", doc)

		out2, err := d2.ToJSON()
		require.NoError(t, err, doc)
		assert.Equal(t, out, out2, "canonical bytes must be a fixed point")
	}
}

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := New()
		d.Name = rapid.String().Draw(t, "name")
		d.Description = rapid.String().Draw(t, "description")
		d.Version = rapid.String().Draw(t, "version")
		numZomes := rapid.IntRange(0, 3).Draw(t, "numZomes")
		for i := 0; i < numZomes; i++ {
			d.Zomes = append(d.Zomes, Zome{
				Name:        rapid.StringMatching(`[a-z][a-z0-9_]{0,15}`).Draw(t, "zomeName"),
				Description: rapid.String().Draw(t, "zomeDescription"),
			})
		}

		out, err := d.ToJSON()
		if err != nil {
			t.Fatalf("ToJSON: %v", err)
		}

		d2, err := FromJSON(out)
		if err != nil {
			t.Fatalf("FromJSON(ToJSON(d)): %v", err)
		}

		if d2.Name != d.Name {
			t.Fatalf("name changed across round-trip: %q != %q", d2.Name, d.Name)
		}
		if d2.DnaSpecVersion != d.DnaSpecVersion {
			t.Fatalf("spec version changed across round-trip: %q != %q", d2.DnaSpecVersion, d.DnaSpecVersion)
		}
		if !d.Equal(d2) {
			t.Fatalf("round-trip not observationally equal")
		}
	})
}

func TestEqual(t *testing.T) {
	a := New()
	a.Name = "x"
	b := New()
	b.Name = "x"
	c := New()
	c.Name = "y"

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	var nilDna *Dna
	assert.True(t, nilDna.Equal(nil))
}

func TestParseError_Unwrap(t *testing.T) {
	_, err := FromJSON([]byte("not json"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Reason)
	if perr.Err != nil {
		assert.True(t, errors.Is(err, perr.Err))
	}
}
