package requestid

import (
	"context"

	"github.com/appforge/pipegate/errors"
	"github.com/google/uuid"
)

type contextKey string

// ctxKey is a key against which the request id gets stored in the context.
const ctxKey = contextKey("request_id")

// NewContext returns a new context carrying a freshly generated request id.
func NewContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey, uuid.New().String())
}

// FromContext retrieves the request id stored in the context.
func FromContext(ctx context.Context) (string, error) {
	ctxRequestID := ctx.Value(ctxKey)
	if ctxRequestID == nil {
		return "", errors.NewNotFoundInContextError("request_id")
	}
	requestID, ok := ctxRequestID.(string)
	if !ok {
		return "", errors.NewInvalidCastError("ctxRequestID", "string")
	}
	return requestID, nil
}
