package util

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	logTag             = "[util]"
	envPipelineTimeout = "PIPELINE_TIMEOUT"
)

// EnvDuration returns the duration held by the named env var, or
// fallback when the var is unset or unparsable.
func EnvDuration(name string, fallback time.Duration) time.Duration {
	env := os.Getenv(name)
	if env == "" {
		return fallback
	}
	d, err := time.ParseDuration(env)
	if err != nil {
		log.Errorln(logTag, ":", name, "must be a duration:", err)
		return fallback
	}
	return d
}

// PipelineTimeout returns the per-request deadline applied by the
// route pipelines.
func PipelineTimeout() time.Duration {
	return EnvDuration(envPipelineTimeout, 10*time.Second)
}

// WriteBackMessage writes the given message as a json response to the response writer.
func WriteBackMessage(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	msg := map[string]interface{}{
		"message": message,
	}
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Errorln(logTag, ": error encoding response message:", err)
	}
}

// WriteBackError writes the given error message as a json response to the response writer.
func WriteBackError(w http.ResponseWriter, err string, code int) {
	WriteBackMessage(w, err, code)
}

// WriteBackRaw writes the given json encoded bytes to the response writer.
func WriteBackRaw(w http.ResponseWriter, raw []byte, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if _, err := w.Write(raw); err != nil {
		log.Errorln(logTag, ": error writing raw response:", err)
	}
}

// WriteBackJSON encodes the given value and writes it to the response writer.
func WriteBackJSON(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorln(logTag, ": error encoding response body:", err)
	}
}

// Contains checks the presence of a string in the given string slice.
func Contains(slice []string, val string) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}
