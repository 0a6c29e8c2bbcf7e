package advisor

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestSanitizeReplacesNonFiniteFloats(t *testing.T) {
	in := map[string]interface{}{
		"ok":   1.5,
		"nan":  math.NaN(),
		"pinf": math.Inf(1),
		"ninf": math.Inf(-1),
		"nested": map[string]interface{}{
			"values": []interface{}{1.0, math.NaN(), 3.0},
		},
	}

	out, n := Sanitize(in)
	if n != 4 {
		t.Errorf("substitutions = %d, want 4", n)
	}

	m := out.(map[string]interface{})
	if m["nan"] != nil || m["pinf"] != nil || m["ninf"] != nil {
		t.Errorf("non-finite values survived: %v", m)
	}
	nested := m["nested"].(map[string]interface{})["values"].([]interface{})
	want := []interface{}{1.0, nil, 3.0}
	if !reflect.DeepEqual(nested, want) {
		t.Errorf("nested = %v, want %v", nested, want)
	}

	if _, err := json.Marshal(out); err != nil {
		t.Fatalf("sanitized tree still not marshalable: %v", err)
	}
}

func TestSanitizeHonorsJSONTags(t *testing.T) {
	type payload struct {
		Renamed  float64 `json:"p_value"`
		Skipped  string  `json:"-"`
		Optional string  `json:"note,omitempty"`
		Plain    int
		hidden   int
	}

	out, n := Sanitize(payload{Renamed: math.NaN(), Skipped: "x", hidden: 3})
	if n != 1 {
		t.Errorf("substitutions = %d, want 1", n)
	}

	m := out.(map[string]interface{})
	if m["p_value"] != nil {
		t.Errorf("p_value = %v, want nil", m["p_value"])
	}
	if _, ok := m["Skipped"]; ok {
		t.Error("json:\"-\" field was emitted")
	}
	if _, ok := m["note"]; ok {
		t.Error("zero omitempty field was emitted")
	}
	if m["Plain"] != 0 {
		t.Errorf("untagged field = %v, want 0 under its Go name", m["Plain"])
	}
}

func TestSanitizeLeavesCleanValuesUntouched(t *testing.T) {
	out, n := Sanitize(map[string]interface{}{"a": "text", "b": 2.0, "c": true})
	if n != 0 {
		t.Errorf("substitutions = %d, want 0", n)
	}
	m := out.(map[string]interface{})
	if m["a"] != "text" || m["b"] != 2.0 || m["c"] != true {
		t.Errorf("values changed: %v", m)
	}
}

func TestSanitizeNilPointer(t *testing.T) {
	var p *float64
	out, n := Sanitize(p)
	if out != nil || n != 0 {
		t.Errorf("Sanitize(nil ptr) = (%v, %d), want (nil, 0)", out, n)
	}
}
