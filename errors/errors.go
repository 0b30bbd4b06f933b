package errors

import (
	"fmt"
)

// EnvVarNotSetError is an error which is returned when a required env var is not set.
type EnvVarNotSetError struct {
	Var string
}

// NewEnvVarNotSetError returns an error for an envVarName whose value is not set.
func NewEnvVarNotSetError(envVarName string) *EnvVarNotSetError {
	return &EnvVarNotSetError{envVarName}
}

// Error implements the error interface.
func (e *EnvVarNotSetError) Error() string {
	return fmt.Sprintf("pipegate: %s env variable not set", e.Var)
}

// NotFoundInContextError is an error which is returned when an expected value in the context is missing.
type NotFoundInContextError struct {
	Field string
}

// NewNotFoundInContextError returns an error for the given field when it is missing from the context.
func NewNotFoundInContextError(field string) *NotFoundInContextError {
	return &NotFoundInContextError{field}
}

// Error implements the error interface.
func (n *NotFoundInContextError) Error() string {
	return fmt.Sprintf("%q not found in request context", n.Field)
}

// InvalidCastError is an error which is returned when an invalid cast of a particular type is attempted.
type InvalidCastError struct {
	From string
	To   string
}

// NewInvalidCastError returns an error naming the two types that were involved in the invalid cast.
func NewInvalidCastError(from, to string) *InvalidCastError {
	return &InvalidCastError{from, to}
}

// Error implements the error interface.
func (i *InvalidCastError) Error() string {
	return fmt.Sprintf("cannot cast %s to %s", i.From, i.To)
}
