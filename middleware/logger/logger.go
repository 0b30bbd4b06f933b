package logger

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const logTag = "[logger]"

// Log is a middleware that logs the request as it is received and
// again once it has been served, along with the time it took.
func Log(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		log.Infoln(logTag, ": started", req.Method, req.URL.Path)
		start := time.Now()
		defer func() {
			log.Infoln(logTag, ": finished", req.Method, req.URL.Path,
				", took", time.Since(start).Seconds())
		}()
		h(w, req)
	}
}
