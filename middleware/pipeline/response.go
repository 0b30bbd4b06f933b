package pipeline

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// responseWriter tracks finalization of the response. The first
// WriteHeader (or body write) finalizes it; a later WriteHeader is a
// programming error in some stage and is dropped along with the body
// that follows it.
type responseWriter struct {
	http.ResponseWriter
	pipeline   string
	status     int
	finalized  bool
	dropWrites bool
}

// Finalized reports whether a response has been finalized.
func (rw *responseWriter) Finalized() bool {
	return rw.finalized
}

// Status returns the finalized status code, or zero.
func (rw *responseWriter) Status() int {
	return rw.status
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.finalized {
		log.Errorln(logTag, ":", rw.pipeline, ": response already finalized with", rw.status,
			"- dropping attempt to write status", code)
		rw.dropWrites = true
		return
	}
	rw.finalized = true
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.dropWrites {
		return len(b), nil
	}
	if !rw.finalized {
		rw.finalized = true
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}
