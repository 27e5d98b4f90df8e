package dna

import "encoding/json"

// splitUnknown returns the entries of raw whose keys are not in known.
// The returned map is nil when every key is recognized.
func splitUnknown(raw map[string]json.RawMessage, known map[string]struct{}) map[string]json.RawMessage {
	var unknown map[string]json.RawMessage
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if unknown == nil {
			unknown = map[string]json.RawMessage{}
		}
		unknown[k] = v
	}
	return unknown
}

// knownSet builds a map for constant-time known-field checks in lossless unmarshaling.
func knownSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// marshalWithUnknown merges preserved unknown fields with the typed view such
// that typed fields win on key collision.
func marshalWithUnknown(unknown map[string]json.RawMessage, typed any) ([]byte, error) {
	out := map[string]json.RawMessage{}
	for k, v := range unknown {
		out[k] = v
	}

	knownBytes, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(knownBytes, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		out[k] = v
	}

	return json.Marshal(out)
}
