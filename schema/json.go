package schema

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/buger/jsonparser"
)

// ValidateJSON checks a raw JSON body against the schema without fully
// decoding it first. The field rules run over the raw bytes; the body
// is only decoded into a map once every rule has passed.
func (s *Schema) ValidateJSON(raw []byte) Result {
	result := Result{}
	for _, f := range s.fields {
		value, dataType, _, err := jsonparser.Get(raw, f.Name)
		if err != nil && err != jsonparser.KeyPathNotFoundError {
			return Result{Errors: []FieldError{{
				Field:   "body",
				Message: "request body must be a JSON object",
			}}}
		}
		if dataType == jsonparser.NotExist || dataType == jsonparser.Null {
			if f.Required {
				result.Errors = append(result.Errors, FieldError{
					Field:   f.Name,
					Message: fmt.Sprintf("%s is required", f.Name),
				})
			}
			continue
		}
		result.Errors = append(result.Errors, checkRawField(f, value, dataType)...)
	}
	if !result.OK() {
		return result
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Result{Errors: []FieldError{{
			Field:   "body",
			Message: "request body must be a JSON object",
		}}}
	}
	result.Value = decoded
	return result
}

// checkRawField applies the type and bound rules to a raw JSON value.
func checkRawField(f Field, value []byte, dataType jsonparser.ValueType) []FieldError {
	typeError := []FieldError{{
		Field:   f.Name,
		Message: fmt.Sprintf("%s must be a %s", f.Name, f.Type),
	}}

	switch f.Type {
	case String:
		if dataType != jsonparser.String {
			return typeError
		}
		str, err := jsonparser.ParseString(value)
		if err != nil {
			return typeError
		}
		return checkLength(f, len([]rune(str)))
	case Number:
		if dataType != jsonparser.Number {
			return typeError
		}
		num, err := jsonparser.ParseFloat(value)
		if err != nil {
			return typeError
		}
		return checkBounds(f, num)
	case Integer:
		if dataType != jsonparser.Number {
			return typeError
		}
		num, err := jsonparser.ParseFloat(value)
		if err != nil || num != math.Trunc(num) {
			return typeError
		}
		return checkBounds(f, num)
	case Boolean:
		if dataType != jsonparser.Boolean {
			return typeError
		}
	case Object:
		if dataType != jsonparser.Object {
			return typeError
		}
	case Array:
		if dataType != jsonparser.Array {
			return typeError
		}
	}
	return nil
}
