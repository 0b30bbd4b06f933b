package health

import (
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/plugins"
	"github.com/appforge/pipegate/util"
)

const (
	pluginName = "health"
	logTag     = "[health]"
)

var (
	singleton *Health
	once      sync.Once
)

// Health plugin answers liveness probes.
type Health struct{}

func init() {
	plugins.RegisterPlugin(Instance())
}

// Instance returns the singleton instance of the Health plugin.
func Instance() *Health {
	once.Do(func() {
		singleton = &Health{}
	})
	return singleton
}

// Name returns the name of the plugin: "health".
func (h *Health) Name() string {
	return pluginName
}

// InitFunc performs no setup; the plugin is stateless.
func (h *Health) InitFunc() error {
	log.Infoln(logTag, ": initializing plugin:", pluginName)
	return nil
}

// Routes returns the http routes the plugin serves. The health route
// deliberately sits outside the token and user-agent gates.
func (h *Health) Routes() []plugins.Route {
	return []plugins.Route{
		{
			Name:        "Health check",
			Methods:     []string{http.MethodGet},
			Path:        "/health",
			HandlerFunc: h.healthCheck(),
			Description: "Reports whether the server is serving requests",
		},
	}
}

// healthBody is pre-encoded; the probe response never varies.
var healthBody = []byte(`{"message":"ok"}`)

func (h *Health) healthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		util.WriteBackRaw(w, healthBody, http.StatusOK)
	}
}
