package health

import (
	"net/http"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

// Watcher periodically probes the health endpoint of the running
// server and keeps the last few results.
type Watcher struct {
	url     string
	results []bool
}

// NewWatcher returns a watcher for the given health endpoint URL.
func NewWatcher(url string) *Watcher {
	return &Watcher{url: url}
}

// Start schedules the periodic self-check.
func (w *Watcher) Start(interval string) {
	c := cron.New()
	if err := c.AddFunc(interval, w.check); err != nil {
		log.Errorln(logTag, ": can't schedule health check:", err)
		return
	}
	c.Start()
}

// check probes the endpoint and records the outcome, keeping the
// last three results.
func (w *Watcher) check() {
	status := true
	res, err := http.Get(w.url)
	if err != nil || res.StatusCode != http.StatusOK {
		status = false
	}
	if res != nil {
		res.Body.Close()
	}

	w.results = append(w.results, status)
	if len(w.results) > 3 {
		w.results = w.results[len(w.results)-3:]
	}

	if !status {
		log.Warnln(logTag, ": health check failed for", w.url)
	}
	if len(w.results) == 3 && !w.results[0] && !w.results[1] && !w.results[2] {
		log.Errorln(logTag, ": server has failed the last 3 health checks")
	}
}
