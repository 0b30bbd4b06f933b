// Package auth gates requests on the access token passed as a query
// parameter. The expected value comes from the AUTH_TOKEN env var.
package auth

import (
	"crypto/subtle"
	"net/http"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/errors"
	"github.com/appforge/pipegate/middleware"
	"github.com/appforge/pipegate/util"
)

const (
	logTag       = "[auth]"
	envAuthToken = "AUTH_TOKEN"
	defaultToken = "123"
	tokenParam   = "token"
)

var (
	expectedToken string
	once          sync.Once
)

// TokenCheck returns a middleware that rejects any request whose
// "token" query parameter does not match the configured value.
func TokenCheck() middleware.Middleware {
	once.Do(func() {
		expectedToken = os.Getenv(envAuthToken)
		if expectedToken == "" {
			expectedToken = defaultToken
			log.Warnln(logTag, ":", errors.NewEnvVarNotSetError(envAuthToken), "- using the default token")
		}
	})
	return NewTokenCheck(expectedToken)
}

// NewTokenCheck returns a token middleware with an explicit expected
// value, bypassing the env configuration.
func NewTokenCheck(expected string) middleware.Middleware {
	return func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get(tokenParam)
			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				util.WriteBackError(w, "Unauthorized: Invalid Token", http.StatusUnauthorized)
				return
			}
			h(w, r)
		}
	}
}
