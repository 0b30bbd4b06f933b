package requestid

import (
	"net/http"
)

// Attach tags every request with a generated request id.
func Attach(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := NewContext(req.Context())
		h(w, req.WithContext(ctx))
	}
}
