package validation

import (
	"encoding/json"
	"testing"
)

// merge overlays override onto validPayload.
func merge(t *testing.T, override string) []byte {
	t.Helper()
	var base, extra map[string]json.RawMessage
	if err := json.Unmarshal([]byte(validPayload), &base); err != nil {
		t.Fatalf("base payload: %v", err)
	}
	if err := json.Unmarshal([]byte(override), &extra); err != nil {
		t.Fatalf("override payload: %v", err)
	}
	for k, v := range extra {
		base[k] = v
	}
	out, err := json.Marshal(base)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return out
}
