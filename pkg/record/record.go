package record

import (
	"fmt"
	"reflect"
)

const (
	// FieldBuild toggles whether an entry takes part in the build.
	FieldBuild = "build"
	// FieldProviderSlug is the grouping key shared by entries of one provider.
	FieldProviderSlug = "provider_slug"
	// FieldDataPoints is the synthesized list of grouped entries.
	FieldDataPoints = "data_points"
)

// Record is a single data provider entry decoded verbatim from one data file.
// Keys other than build and provider_slug are opaque template payload.
type Record map[string]any

// Build reports whether the record takes part in the build. The build value
// follows loose truthiness: nil, false, numeric zero, the YAML 1.1 words
// no/off, and empty strings, lists, or maps are falsy.
func Build(r Record) (bool, error) {
	value, ok := r[FieldBuild]
	if !ok {
		return false, &MissingFieldError{Field: FieldBuild}
	}
	return Truthy(value), nil
}

// Require reports a MissingFieldError when field is absent. A present key with
// a null value satisfies it.
func Require(r Record, field string) error {
	if _, ok := r[field]; !ok {
		return &MissingFieldError{Field: field}
	}
	return nil
}

// ProviderSlug returns the grouping key of the record. Scalar values are
// stringified; lists and maps are rejected.
func ProviderSlug(r Record) (string, error) {
	value, ok := r[FieldProviderSlug]
	if !ok {
		return "", &MissingFieldError{Field: FieldProviderSlug}
	}
	switch v := value.(type) {
	case nil:
		return "", fmt.Errorf("%w: %s is null", ErrInvalidSlug, FieldProviderSlug)
	case string:
		return v, nil
	case map[string]any, []any:
		return "", fmt.Errorf("%w: %s must be a scalar, got %T", ErrInvalidSlug, FieldProviderSlug, value)
	default:
		return fmt.Sprint(v), nil
	}
}

// Clone returns a shallow copy of the record.
func Clone(r Record) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r)+1)
	for key, value := range r {
		out[key] = value
	}
	return out
}

// Truthy applies loose truthiness to a decoded YAML value.
func Truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, ok := YAMLBool(v); ok {
			return b
		}
		return v != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// YAMLBool resolves the YAML 1.1 boolean words (yes/no, on/off, true/false in
// lower, title, or upper case). ok is false for any other string.
func YAMLBool(s string) (value bool, ok bool) {
	switch s {
	case "yes", "Yes", "YES", "on", "On", "ON", "true", "True", "TRUE":
		return true, true
	case "no", "No", "NO", "off", "Off", "OFF", "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

// Normalize converts nested YAML mappings with non-string keys into
// map[string]any so templates can address every level with dot lookups.
func Normalize(value any) any {
	switch v := value.(type) {
	case Record:
		return normalizeMap(v)
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = Normalize(item)
		}
		return out
	default:
		return value
	}
}

func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, item := range in {
		out[key] = Normalize(item)
	}
	return out
}
