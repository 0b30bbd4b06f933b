// Package useragent gates requests on their User-Agent header.
// Every request that reaches the stage is recorded to the agent log
// first; the accept/reject decision is made only after the record is
// taken, so blocked clients show up in the log too.
package useragent

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/agentlog"
	"github.com/appforge/pipegate/middleware"
	"github.com/appforge/pipegate/model/requestid"
	"github.com/appforge/pipegate/util"
)

const (
	logTag           = "[useragent]"
	envBlockedAgents = "BLOCKED_AGENTS"
)

var (
	singleton *Guard
	once      sync.Once
)

// Guard records and filters requests by their User-Agent. The blocked
// pattern list is read-only after construction and shared across
// concurrent requests.
type Guard struct {
	logger  *agentlog.Logger
	blocked []string
}

// New returns a guard that records to the given logger and blocks any
// agent containing one of the given patterns, case-insensitively.
func New(logger *agentlog.Logger, blocked []string) *Guard {
	g := &Guard{logger: logger}
	for _, pattern := range blocked {
		pattern = strings.TrimSpace(strings.ToLower(pattern))
		if pattern != "" && !util.Contains(g.blocked, pattern) {
			g.blocked = append(g.blocked, pattern)
		}
	}
	return g
}

// Instance returns the process-wide guard, configured from the
// BLOCKED_AGENTS env var (comma separated patterns) or, when unset,
// the embedded default pattern list.
func Instance() *Guard {
	once.Do(func() {
		singleton = New(agentlog.Default(), blockedAgents())
	})
	return singleton
}

// Check returns the user-agent middleware over the process-wide guard.
func Check() middleware.Middleware {
	return Instance().Check
}

// Check records the request's User-Agent, then rejects the request if
// the header is absent (400) or matches a blocked pattern (403).
func (g *Guard) Check(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agent := r.Header.Get("User-Agent")

		recorded := agent
		if recorded == "" {
			recorded = "<absent>"
		}
		reqID, _ := requestid.FromContext(r.Context())
		g.logger.Record(recorded, reqID)

		if agent == "" {
			util.WriteBackError(w, "User-Agent header is required", http.StatusBadRequest)
			return
		}
		if pattern, blocked := g.match(agent); blocked {
			log.Infoln(logTag, ": blocked agent", agent, "matching pattern", pattern)
			util.WriteBackError(w, "Forbidden: User-Agent is not allowed", http.StatusForbidden)
			return
		}

		h(w, r)
	}
}

// match reports the first blocked pattern the agent contains, if any.
func (g *Guard) match(agent string) (string, bool) {
	agent = strings.ToLower(agent)
	for _, pattern := range g.blocked {
		if strings.Contains(agent, pattern) {
			return pattern, true
		}
	}
	return "", false
}

// blockedAgents resolves the blocked pattern list: the env var wins,
// else the embedded default list ships with the binary.
func blockedAgents() []string {
	if env := os.Getenv(envBlockedAgents); env != "" {
		return strings.Split(env, ",")
	}

	box := packr.NewBox("./data")
	content, err := box.Find("blocked_agents.json")
	if err != nil {
		log.Errorln(logTag, ": can't read embedded blocked agents list:", err)
		return nil
	}
	var patterns []string
	if err := json.Unmarshal(content, &patterns); err != nil {
		log.Errorln(logTag, ": can't parse embedded blocked agents list:", err)
		return nil
	}
	return patterns
}
