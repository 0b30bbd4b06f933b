// Package validate provides the request-body validation stage.
package validate

import (
	"bytes"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/middleware"
	"github.com/appforge/pipegate/model/validated"
	"github.com/appforge/pipegate/schema"
	"github.com/appforge/pipegate/util"
)

const logTag = "[validate]"

// Body returns a middleware that validates the request body against
// the given schema. A rejected body terminates the request with a 400
// carrying the full list of violated rules; an accepted body is
// attached to the request context for the stages and handler that
// follow.
func Body(s *schema.Schema) middleware.Middleware {
	return func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw, err := ioutil.ReadAll(r.Body)
			if err != nil {
				log.Errorln(logTag, ": can't read request body:", err)
				util.WriteBackError(w, "can't read request body", http.StatusBadRequest)
				return
			}
			r.Body.Close()
			// Downstream readers still get the body.
			r.Body = ioutil.NopCloser(bytes.NewReader(raw))

			result := s.ValidateJSON(raw)
			if !result.OK() {
				util.WriteBackJSON(w, map[string]interface{}{
					"message": "validation failed",
					"errors":  result.Errors,
				}, http.StatusBadRequest)
				return
			}

			ctx := validated.NewContext(r.Context(), result.Value)
			h(w, r.WithContext(ctx))
		}
	}
}
