package panic

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/util"
)

const logTag = "[recovery]"

// Recovery is a middleware that wraps an http handler to recover from
// panics. It is the single top-level boundary: an unexpected panic in
// any stage or handler becomes a 500 response and is never re-thrown
// to the transport layer.
func Recovery(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			r := recover()
			if r != nil {
				var err error
				switch t := r.(type) {
				case string:
					err = errors.New(t)
				case error:
					err = t
				default:
					err = fmt.Errorf("unknown error occurred: %v", t)
				}
				log.Errorln(logTag, ": recovered from panic:", err)
				util.WriteBackError(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, req)
	}
}
