// Package agents exposes the User-Agent log recorded by the request
// pipeline.
package agents

import (
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/agentlog"
	"github.com/appforge/pipegate/middleware/auth"
	"github.com/appforge/pipegate/middleware/pipeline"
	"github.com/appforge/pipegate/middleware/ratelimiter"
	"github.com/appforge/pipegate/plugins"
	"github.com/appforge/pipegate/util"
)

const (
	pluginName = "agents"
	logTag     = "[agents]"
)

var (
	singleton *Agents
	once      sync.Once
)

// Agents plugin serves the recorded agent log.
type Agents struct {
	logger *agentlog.Logger
}

func init() {
	plugins.RegisterPlugin(Instance())
}

// Instance returns the singleton instance of the Agents plugin.
func Instance() *Agents {
	once.Do(func() {
		singleton = &Agents{}
	})
	return singleton
}

// Name returns the name of the plugin: "agents".
func (a *Agents) Name() string {
	return pluginName
}

// InitFunc binds the plugin to the same log target the user-agent
// stage records to.
func (a *Agents) InitFunc() error {
	log.Infoln(logTag, ": initializing plugin:", pluginName)
	a.logger = agentlog.Default()
	return nil
}

// Routes returns the http routes the plugin serves.
func (a *Agents) Routes() []plugins.Route {
	guard := pipeline.New(pluginName,
		pipeline.Stage{Name: "ratelimit", Middleware: ratelimiter.Limit()},
		pipeline.Stage{Name: "token", Middleware: auth.TokenCheck()},
	).WithTimeout(util.PipelineTimeout()).Wrap
	return []plugins.Route{
		{
			Name:        "Get agents",
			Methods:     []string{http.MethodGet},
			Path:        "/api/agents",
			HandlerFunc: guard(a.getAgents()),
			Description: "Returns the recorded User-Agent log",
		},
	}
}

func (a *Agents) getAgents() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		entries, err := a.logger.Entries()
		if err != nil {
			log.Errorln(logTag, ": error reading the agent log:", err)
			util.WriteBackError(w, "an error occurred while reading the agent log", http.StatusInternalServerError)
			return
		}
		util.WriteBackJSON(w, map[string]interface{}{
			"message": "agents retrieved successfully",
			"data":    entries,
		}, http.StatusOK)
	}
}
