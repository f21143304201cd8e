package gptfunc

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Converter is the per-type strategy behind schema generation and validation.
// The same converter kind bound to a parameter handles both directions, which
// keeps what is advertised and what is accepted symmetric.
type Converter interface {
	// ToSchema produces a schema fragment for param. It must not fail for a
	// well-formed parameter of the converter's target type; unknown constraint
	// keys in dec are ignored, known keys are copied verbatim.
	ToSchema(param ParameterSpec, dec Constraints) (map[string]any, error)
	// FromSchema validates value's runtime type, checks every constraint key
	// present in fragment, and returns the possibly type-converted value.
	// It fails with a descriptive error on the first violated constraint.
	FromSchema(value any, fragment map[string]any) (any, error)
}

// BooleanConverter handles boolean parameters.
type BooleanConverter struct{}

func (BooleanConverter) ToSchema(_ ParameterSpec, _ Constraints) (map[string]any, error) {
	return map[string]any{"type": "boolean"}, nil
}

func (BooleanConverter) FromSchema(value any, _ map[string]any) (any, error) {
	if _, ok := value.(bool); !ok {
		return nil, errors.New("value is not of type 'bool'")
	}
	return value, nil
}

// StringConverter handles string parameters, and is the base for custom types
// derived from strings (embed it and specialize). When the parameter declares
// no default, minLength defaults to 0 and maxLength to 255.
type StringConverter struct{}

func (StringConverter) ToSchema(param ParameterSpec, dec Constraints) (map[string]any, error) {
	schema := map[string]any{"type": "string"}

	if v, ok := dec["minLength"]; ok {
		schema["minLength"] = v
	} else if !param.HasDefault {
		schema["minLength"] = 0
	}
	if v, ok := dec["maxLength"]; ok {
		schema["maxLength"] = v
	} else if !param.HasDefault {
		schema["maxLength"] = 255
	}
	if v, ok := dec["pattern"]; ok {
		schema["pattern"] = v
	}
	return schema, nil
}

func (StringConverter) FromSchema(value any, fragment map[string]any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errors.New("value is not of type 'string'")
	}
	if n, ok := asFloat(fragment["minLength"]); ok && float64(len(s)) < n {
		return nil, errors.New("value does not meet the minLength constraint")
	}
	if n, ok := asFloat(fragment["maxLength"]); ok && float64(len(s)) > n {
		return nil, errors.New("value exceeds the maxLength constraint")
	}
	if pat, ok := fragment["pattern"].(string); ok {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pat, err)
		}
		// Match must begin at the start of the value, the rest of the value
		// may extend past the match.
		loc := re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			return nil, errors.New("value does not match the specified pattern")
		}
	}
	return s, nil
}

// datetimeLayouts accepts both RFC 3339 offsets (+00:00) and the colon-less
// form (+0000).
var datetimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05Z0700"}

// DatetimeConverter handles date-time parameters: a string schema with the
// "date-time" format, converted into a time.Time on validation.
type DatetimeConverter struct {
	StringConverter
}

func (c DatetimeConverter) ToSchema(param ParameterSpec, dec Constraints) (map[string]any, error) {
	schema, err := c.StringConverter.ToSchema(param, dec)
	if err != nil {
		return nil, err
	}
	schema["format"] = "date-time"
	return schema, nil
}

func (c DatetimeConverter) FromSchema(value any, fragment map[string]any) (any, error) {
	v, err := c.StringConverter.FromSchema(value, fragment)
	if err != nil {
		return nil, err
	}
	s := v.(string)
	format, _ := fragment["format"].(string)
	if format == "" {
		return nil, errors.New("no format found")
	}
	if format != "date-time" {
		return nil, fmt.Errorf("format is %q, not \"date-time\"", format)
	}
	for _, layout := range datetimeLayouts {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("value %q is not a valid date-time", s)
}

// NumericConverter handles integer and number parameters. The schema type is
// "integer" iff the parameter declares an integer type, "number" otherwise.
type NumericConverter struct{}

func (NumericConverter) ToSchema(param ParameterSpec, dec Constraints) (map[string]any, error) {
	schema := map[string]any{}
	for _, key := range []string{"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"} {
		if v, ok := dec[key]; ok {
			schema[key] = v
		}
	}
	if param.Type == "integer" {
		schema["type"] = "integer"
	} else {
		schema["type"] = "number"
	}
	return schema, nil
}

func (NumericConverter) FromSchema(value any, fragment map[string]any) (any, error) {
	f, ok := asFloat(value)
	if !ok {
		return nil, errors.New("value is not of type 'int' or 'float'")
	}
	if n, ok := asFloat(fragment["minimum"]); ok && f < n {
		return nil, errors.New("value is below the minimum constraint")
	}
	if n, ok := asFloat(fragment["maximum"]); ok && f > n {
		return nil, errors.New("value exceeds the maximum constraint")
	}
	if n, ok := asFloat(fragment["exclusiveMinimum"]); ok && f <= n {
		return nil, errors.New("value does not meet the exclusiveMinimum constraint")
	}
	if n, ok := asFloat(fragment["exclusiveMaximum"]); ok && f >= n {
		return nil, errors.New("value does not meet the exclusiveMaximum constraint")
	}
	if n, ok := asFloat(fragment["multipleOf"]); ok && math.Mod(f, n) != 0 {
		return nil, errors.New("value does not meet the multipleOf constraint")
	}
	return value, nil
}

// ArrayConverter handles sequence parameters declared as []T. Element schemas
// are derived for the recognized primitive element types; anything else gets
// an unconstrained element schema.
type ArrayConverter struct{}

func (ArrayConverter) ToSchema(param ParameterSpec, dec Constraints) (map[string]any, error) {
	schema := map[string]any{
		"type":  "array",
		"items": elementSchema(strings.TrimPrefix(param.Type, "[]")),
	}
	for _, key := range []string{"minItems", "maxItems", "uniqueItems"} {
		if v, ok := dec[key]; ok {
			schema[key] = v
		}
	}
	return schema, nil
}

func (ArrayConverter) FromSchema(value any, fragment map[string]any) (any, error) {
	items, ok := asSlice(value)
	if !ok {
		return nil, errors.New("value is not of type 'list'")
	}
	if n, ok := asFloat(fragment["minItems"]); ok && float64(len(items)) < n {
		return nil, errors.New("value does not meet the minItems constraint")
	}
	if n, ok := asFloat(fragment["maxItems"]); ok && float64(len(items)) > n {
		return nil, errors.New("value exceeds the maxItems constraint")
	}
	if unique, _ := fragment["uniqueItems"].(bool); unique {
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if reflect.DeepEqual(items[i], items[j]) {
					return nil, errors.New("value does not meet the uniqueItems constraint")
				}
			}
		}
	}
	return value, nil
}

func elementSchema(elemType string) map[string]any {
	switch elemType {
	case "integer", "number", "string", "boolean":
		return map[string]any{"type": elemType}
	}
	return map[string]any{}
}

// LiteralConverter handles enumerated string parameters. The accepted values
// come from the "enum" constraint.
type LiteralConverter struct{}

func (LiteralConverter) ToSchema(param ParameterSpec, dec Constraints) (map[string]any, error) {
	values, ok := enumValues(dec["enum"])
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("enum parameter %q declares no values", param.Name)
	}
	return map[string]any{"type": "string", "enum": values}, nil
}

func (LiteralConverter) FromSchema(value any, fragment map[string]any) (any, error) {
	values, _ := enumValues(fragment["enum"])
	for _, v := range values {
		if reflect.DeepEqual(value, v) {
			return value, nil
		}
	}
	return nil, fmt.Errorf("value %v does not match any of the literal values", value)
}

// enumValues normalizes an enum constraint to []any; []string is accepted for
// caller convenience.
func enumValues(v any) ([]any, bool) {
	switch vals := v.(type) {
	case []any:
		return vals, true
	case []string:
		out := make([]any, len(vals))
		for i, s := range vals {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// asFloat reads a numeric value of any width as float64. Constraint values may
// arrive as Go ints (typed in source) or float64 (from JSON).
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// asSlice flattens any slice or array value into []any.
func asSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
