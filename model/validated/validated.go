// Package validated stores the accepted request body in the request
// context so that later stages and the route handler can consume it
// without re-parsing or re-validating the body.
package validated

import (
	"context"

	"github.com/appforge/pipegate/errors"
)

type contextKey string

// ctxKey is a key against which the validated request body is stored.
const ctxKey = contextKey("validated_body")

// NewContext returns a new context carrying the accepted body value.
func NewContext(ctx context.Context, body map[string]interface{}) context.Context {
	return context.WithValue(ctx, ctxKey, body)
}

// FromContext retrieves the accepted body value stored in the context.
func FromContext(ctx context.Context) (map[string]interface{}, error) {
	ctxBody := ctx.Value(ctxKey)
	if ctxBody == nil {
		return nil, errors.NewNotFoundInContextError("validated_body")
	}
	body, ok := ctxBody.(map[string]interface{})
	if !ok {
		return nil, errors.NewInvalidCastError("ctxBody", "map[string]interface{}")
	}
	return body, nil
}
