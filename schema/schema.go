// Package schema implements declarative validation of JSON-like request
// bodies. A Schema is an ordered set of named field rules; validating a
// value reports every violated rule, not just the first one.
package schema

import (
	"fmt"
	"math"
	"strconv"
)

// Type is the declared type of a schema field.
type Type string

// Field types supported by a schema.
const (
	String  Type = "string"
	Number  Type = "number"
	Integer Type = "integer"
	Boolean Type = "boolean"
	Object  Type = "object"
	Array   Type = "array"
)

// Field describes the validation rules for a single named field.
// For String fields Min and Max bound the character length, for
// Number and Integer fields they bound the numeric value.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Min      *float64
	Max      *float64
}

// Bound is a convenience for declaring Min/Max values inline.
func Bound(v float64) *float64 {
	return &v
}

// FieldError describes a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a value against a schema. A
// result either carries the accepted value or a non-empty list of
// field errors, never both.
type Result struct {
	Value  map[string]interface{}
	Errors []FieldError
}

// OK reports whether the value was accepted.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Schema is an immutable, ordered set of field rules. Schemas are
// safe to share across concurrent requests.
type Schema struct {
	fields []Field
}

// New constructs a schema from the given fields. The declaration
// order of the fields is the order in which errors are reported.
func New(fields ...Field) *Schema {
	s := &Schema{fields: make([]Field, len(fields))}
	copy(s.fields, fields)
	return s
}

// Fields returns a copy of the schema's field rules.
func (s *Schema) Fields() []Field {
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)
	return fields
}

// Validate checks value against the schema, accumulating an error for
// every violated rule. On acceptance the returned result carries the
// original value unmodified; no coercion is performed.
func (s *Schema) Validate(value map[string]interface{}) Result {
	result := Result{}
	for _, f := range s.fields {
		v, present := value[f.Name]
		if !present || v == nil {
			if f.Required {
				result.Errors = append(result.Errors, FieldError{
					Field:   f.Name,
					Message: fmt.Sprintf("%s is required", f.Name),
				})
			}
			continue
		}
		result.Errors = append(result.Errors, checkField(f, v)...)
	}
	if result.OK() {
		result.Value = value
	}
	return result
}

// checkField applies the type and bound rules to a present value.
func checkField(f Field, v interface{}) []FieldError {
	var errs []FieldError
	typeError := func() []FieldError {
		return append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%s must be a %s", f.Name, f.Type),
		})
	}

	switch f.Type {
	case String:
		str, ok := v.(string)
		if !ok {
			return typeError()
		}
		errs = append(errs, checkLength(f, len([]rune(str)))...)
	case Number:
		num, ok := toFloat(v)
		if !ok {
			return typeError()
		}
		errs = append(errs, checkBounds(f, num)...)
	case Integer:
		num, ok := toFloat(v)
		if !ok || num != math.Trunc(num) {
			return typeError()
		}
		errs = append(errs, checkBounds(f, num)...)
	case Boolean:
		if _, ok := v.(bool); !ok {
			return typeError()
		}
	case Object:
		if _, ok := v.(map[string]interface{}); !ok {
			return typeError()
		}
	case Array:
		if _, ok := v.([]interface{}); !ok {
			return typeError()
		}
	}
	return errs
}

func checkLength(f Field, length int) []FieldError {
	var errs []FieldError
	if f.Min != nil && float64(length) < *f.Min {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%s must be at least %s characters long", f.Name, formatBound(*f.Min)),
		})
	}
	if f.Max != nil && float64(length) > *f.Max {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%s must be at most %s characters long", f.Name, formatBound(*f.Max)),
		})
	}
	return errs
}

func checkBounds(f Field, num float64) []FieldError {
	var errs []FieldError
	if f.Min != nil && num < *f.Min {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%s must be at least %s", f.Name, formatBound(*f.Min)),
		})
	}
	if f.Max != nil && num > *f.Max {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%s must be at most %s", f.Name, formatBound(*f.Max)),
		})
	}
	return errs
}

// toFloat accepts the numeric representations a value may take
// depending on whether it was decoded from JSON or built in code.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// formatBound renders a bound without a trailing fraction when it is whole.
func formatBound(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
