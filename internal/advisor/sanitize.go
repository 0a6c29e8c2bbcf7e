package advisor

import (
	"math"
	"reflect"
	"strings"
)

// Sanitize rewrites a value tree into a JSON-encodable form, replacing NaN
// and infinite floats with nil and honoring json struct tags. encoding/json
// refuses to marshal non-finite floats, and detector diagnostics legitimately
// contain them (zero-variance columns, empty correlation sets). Returns the
// rewritten tree and the number of substitutions made.
func Sanitize(v interface{}) (interface{}, int) {
	count := 0
	out := sanitizeValue(reflect.ValueOf(v), &count)
	return out, count
}

func sanitizeValue(v reflect.Value, count *int) interface{} {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return sanitizeValue(v.Elem(), count)
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			*count++
			return nil
		}
		return f
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key, ok := iter.Key().Interface().(string)
			if !ok {
				key = iter.Key().String()
			}
			out[key] = sanitizeValue(iter.Value(), count)
		}
		return out
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = sanitizeValue(v.Index(i), count)
		}
		return out
	case reflect.Struct:
		return sanitizeStruct(v, count)
	default:
		return v.Interface()
	}
}

func sanitizeStruct(v reflect.Value, count *int) map[string]interface{} {
	t := v.Type()
	out := make(map[string]interface{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		name, omitempty := jsonName(field)
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		out[name] = sanitizeValue(fv, count)
	}
	return out
}

func jsonName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = field.Name
	}
	omitempty := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}
