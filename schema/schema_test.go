package schema

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func userSchema() *Schema {
	return New(
		Field{Name: "name", Type: String, Required: true, Min: Bound(3), Max: Bound(30)},
		Field{Name: "email", Type: String, Required: true, Min: Bound(3)},
		Field{Name: "age", Type: Integer, Required: false, Min: Bound(0), Max: Bound(120)},
	)
}

func TestValidate(t *testing.T) {
	Convey("Validate", t, func() {
		s := userSchema()

		Convey("accepts a fully populated, in-bounds value unmodified", func() {
			value := map[string]interface{}{
				"name":  "john",
				"email": "john@appleseed.com",
				"age":   42,
			}
			result := s.Validate(value)
			So(result.OK(), ShouldBeTrue)
			So(result.Errors, ShouldBeEmpty)
			So(result.Value["name"], ShouldEqual, "john")
			So(result.Value["age"], ShouldEqual, 42)
		})

		Convey("accepts a value missing an optional field", func() {
			result := s.Validate(map[string]interface{}{
				"name":  "john",
				"email": "john@appleseed.com",
			})
			So(result.OK(), ShouldBeTrue)
		})

		Convey("rejects a value missing a required field, naming the field", func() {
			result := s.Validate(map[string]interface{}{
				"name": "john",
			})
			So(result.OK(), ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0].Field, ShouldEqual, "email")
			So(result.Errors[0].Message, ShouldEqual, "email is required")
		})

		Convey("treats an explicit nil as absent", func() {
			result := s.Validate(map[string]interface{}{
				"name":  "john",
				"email": nil,
			})
			So(result.OK(), ShouldBeFalse)
			So(result.Errors[0].Message, ShouldEqual, "email is required")
		})

		Convey("accumulates every violated rule, not just the first", func() {
			result := s.Validate(map[string]interface{}{
				"name": "jo",
				"age":  150,
			})
			So(result.OK(), ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 3)
			So(result.Errors[0].Message, ShouldEqual, "name must be at least 3 characters long")
			So(result.Errors[1].Message, ShouldEqual, "email is required")
			So(result.Errors[2].Message, ShouldEqual, "age must be at most 120")
		})

		Convey("reports errors in schema declaration order", func() {
			result := s.Validate(map[string]interface{}{
				"age": -1,
			})
			So(result.Errors, ShouldHaveLength, 3)
			So(result.Errors[0].Field, ShouldEqual, "name")
			So(result.Errors[1].Field, ShouldEqual, "email")
			So(result.Errors[2].Field, ShouldEqual, "age")
		})

		Convey("rejects a type mismatch", func() {
			result := s.Validate(map[string]interface{}{
				"name":  42,
				"email": "john@appleseed.com",
			})
			So(result.OK(), ShouldBeFalse)
			So(result.Errors[0].Message, ShouldEqual, "name must be a string")
		})

		Convey("rejects a fractional value for an integer field", func() {
			result := s.Validate(map[string]interface{}{
				"name":  "john",
				"email": "john@appleseed.com",
				"age":   4.2,
			})
			So(result.OK(), ShouldBeFalse)
			So(result.Errors[0].Message, ShouldEqual, "age must be a integer")
		})

		Convey("is deterministic for the same schema and value", func() {
			value := map[string]interface{}{"name": "jo"}
			first := s.Validate(value)
			second := s.Validate(value)
			So(second.Errors, ShouldResemble, first.Errors)
		})
	})
}

func TestValidateJSON(t *testing.T) {
	Convey("ValidateJSON", t, func() {
		s := userSchema()

		Convey("accepts a valid raw body and decodes it", func() {
			result := s.ValidateJSON([]byte(`{"name":"john","email":"john@appleseed.com","age":42}`))
			So(result.OK(), ShouldBeTrue)
			So(result.Value["name"], ShouldEqual, "john")
			So(result.Value["age"], ShouldEqual, 42.0)
		})

		Convey("rejects a missing required field", func() {
			result := s.ValidateJSON([]byte(`{"name":"john"}`))
			So(result.OK(), ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0].Message, ShouldEqual, "email is required")
		})

		Convey("treats a JSON null as absent", func() {
			result := s.ValidateJSON([]byte(`{"name":"john","email":null}`))
			So(result.OK(), ShouldBeFalse)
			So(result.Errors[0].Message, ShouldEqual, "email is required")
		})

		Convey("accumulates every violated rule", func() {
			result := s.ValidateJSON([]byte(`{"name":"jo","age":150}`))
			So(result.Errors, ShouldHaveLength, 3)
		})

		Convey("rejects a type mismatch in raw form", func() {
			result := s.ValidateJSON([]byte(`{"name":42,"email":"john@appleseed.com"}`))
			So(result.OK(), ShouldBeFalse)
			So(result.Errors[0].Message, ShouldEqual, "name must be a string")
		})

		Convey("rejects a body that is not a JSON object", func() {
			result := s.ValidateJSON([]byte(`not json`))
			So(result.OK(), ShouldBeFalse)
			So(result.Errors[0].Field, ShouldEqual, "body")
		})
	})
}
