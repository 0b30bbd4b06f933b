// Package pipeline executes an ordered list of middleware stages
// against a request. Unlike a plain pre-composed middleware chain, the
// runner keeps an explicit stage index and response state per request,
// which lets it enforce that exactly one response is finalized per run
// and apply a best-effort deadline across the stages.
package pipeline

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/middleware"
	"github.com/appforge/pipegate/util"
)

const logTag = "[pipeline]"

// Stage is one named unit in the pipeline. Its middleware either
// invokes the next handler it is given, continuing the run, or
// finalizes a response and returns without invoking it.
type Stage struct {
	Name       string
	Middleware middleware.Middleware
}

// Pipeline is a named, ordered list of stages terminating in a route
// handler. A pipeline is immutable once built and safe to share
// across concurrent requests.
type Pipeline struct {
	name    string
	stages  []Stage
	timeout time.Duration
}

// New returns a pipeline that runs the given stages in order.
func New(name string, stages ...Stage) *Pipeline {
	p := &Pipeline{name: name, stages: make([]Stage, len(stages))}
	copy(p.stages, stages)
	return p
}

// WithTimeout sets a deadline for the whole run. If the deadline
// passes before a response is finalized, the runner finalizes a 504
// and abandons the remaining stages. In-flight stage I/O is not
// interrupted.
func (p *Pipeline) WithTimeout(d time.Duration) *Pipeline {
	p.timeout = d
	return p
}

// Wrap adapts the handler to the pipeline's stages. It implements
// middleware.Chainer, so a pipeline slots in wherever a middleware
// chain would.
func (p *Pipeline) Wrap(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, pipeline: p.name}

		if p.timeout > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), p.timeout)
			defer cancel()
			r = r.WithContext(ctx)
		}

		p.run(rw, r, h, 0)

		if !rw.Finalized() {
			log.Errorln(logTag, ":", p.name, ": run completed without finalizing a response")
			util.WriteBackError(rw, "internal server error", http.StatusInternalServerError)
		}
	}
}

// run dispatches the stage at index, advancing through the stage list
// until a stage finalizes a response or the terminal handler runs.
func (p *Pipeline) run(rw *responseWriter, r *http.Request, h http.HandlerFunc, index int) {
	if err := r.Context().Err(); err != nil {
		if !rw.Finalized() {
			log.Warnln(logTag, ":", p.name, ": deadline exceeded at stage index", index, ":", err)
			util.WriteBackError(rw, "request timed out", http.StatusGatewayTimeout)
		}
		return
	}

	if index == len(p.stages) {
		h(rw, r)
		return
	}

	stage := p.stages[index]
	advanced := false
	next := func(w http.ResponseWriter, req *http.Request) {
		advanced = true
		p.run(rw, req, h, index+1)
	}

	stage.Middleware(next)(rw, r)

	if !advanced && !rw.Finalized() {
		// A stage that neither continues nor responds would leave the
		// request hanging; convert the defect to a 500.
		log.Errorln(logTag, ":", p.name, ": stage", stage.Name, "neither continued nor finalized a response")
		util.WriteBackError(rw, "internal server error", http.StatusInternalServerError)
	}
}
