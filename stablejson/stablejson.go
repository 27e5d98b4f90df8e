// Package stablejson provides deterministic JSON encoding for DNA documents.
//
// Output is compact, object keys are sorted bytewise, and numbers are carried
// through as their original literals (via json.Number) rather than being
// re-formatted through float64. Determinism therefore extends into preserved
// unknown fields, whose raw bytes arrive in whatever key order the producer
// used.
//
// This is intentionally not RFC 8785 (JCS): DNA documents are consumed by
// this SDK's own parser, so cross-language canonical number formatting buys
// nothing, while literal preservation keeps round-trips exact for numbers a
// float64 re-format would perturb.
package stablejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"
)

// Marshal returns a deterministic JSON encoding of v. Inputs of type
// json.RawMessage or []byte are treated as pre-encoded JSON and normalized;
// anything else is marshaled with encoding/json first.
func Marshal(v any) ([]byte, error) {
	var b []byte

	switch x := v.(type) {
	case json.RawMessage:
		b = x
	case []byte:
		b = x
	default:
		var err error
		b, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var val any
	if err := dec.Decode(&val); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		if err == nil {
			return nil, errors.New("invalid JSON: trailing data")
		}
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeStable(&buf, val); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeStable(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		// encoding/json's string escaping is already deterministic.
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case json.Number:
		buf.WriteString(x.String())
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeStable(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		// Bytewise order, matching what encoding/json uses for map keys.
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeStable(buf, x[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return errors.New("unsupported JSON value type")
	}
}
