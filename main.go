package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"runtime"
	"strconv"

	"github.com/denisbrodbeck/machineid"
	"github.com/gorilla/mux"
	"github.com/mackerelio/go-osstat/memory"
	"github.com/pkg/profile"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/appforge/pipegate/middleware"
	"github.com/appforge/pipegate/middleware/logger"
	"github.com/appforge/pipegate/middleware/order"
	"github.com/appforge/pipegate/middleware/panic"
	"github.com/appforge/pipegate/model/requestid"
	"github.com/appforge/pipegate/plugins"
	"github.com/appforge/pipegate/plugins/health"

	_ "github.com/appforge/pipegate/plugins/agents"
	_ "github.com/appforge/pipegate/plugins/users"
)

const logTag = "[cmd]"

var (
	envFile     string
	logMode     string
	logFile     string
	listPlugins bool
	address     string
	port        int
	cpuprofile  bool
)

func init() {
	flag.StringVar(&envFile, "env", ".env", "Path to file with environment variables to load in KEY=VALUE format")
	flag.StringVar(&logMode, "log", "", "Define to change the default log mode(error), other options are: debug(most verbose) and info")
	flag.StringVar(&logFile, "logfile", "", "Process log file; logs go to stderr when unset")
	flag.BoolVar(&listPlugins, "plugins", false, "List currently registered plugins")
	flag.StringVar(&address, "addr", "0.0.0.0", "Address to serve on")
	flag.IntVar(&port, "port", portFromEnv(8000), "Port number")
	flag.BoolVar(&cpuprofile, "cpuprofile", false, "Write a cpu profile of the process")
}

// portFromEnv returns the port held by the PORT env var, for
// deployments where the port is dynamically assigned. An unset or
// malformed value yields the fallback.
func portFromEnv(fallback int) int {
	env := os.Getenv("PORT")
	if env == "" {
		return fallback
	}
	p, err := strconv.Atoi(env)
	if err != nil {
		log.Errorln(logTag, ": PORT must be an integer:", err)
		return fallback
	}
	return p
}

// chain composes the process-wide middleware that wraps the router
// outside the per-route pipelines.
type chain struct {
	order.Fifo
}

func (c *chain) Wrap(h http.HandlerFunc) http.HandlerFunc {
	return c.Adapt(h, list()...)
}

func list() []middleware.Middleware {
	return []middleware.Middleware{
		panic.Recovery,
		logger.Log,
		requestid.Attach,
	}
}

func main() {
	flag.Parse()

	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        "2006/01/02 15:04:05",
		DisableLevelTruncation: true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return "", fmt.Sprintf(" %s:%d", filename, f.Line)
		},
	})

	switch logMode {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.ErrorLevel)
	}

	if logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100,
			MaxAge:     14,
			MaxBackups: 10,
		})
	}

	if cpuprofile {
		defer profile.Start().Stop()
	}

	// Load all env vars from envFile
	if err := LoadEnvFromFile(envFile); err != nil {
		log.Infoln(logTag, ": reading env file", envFile, ". This may happen if the environments are declared directly : ", err)
	}

	if id, err := machineid.ProtectedID("pipegate"); err == nil {
		log.Infoln(logTag, ": instance id:", id)
	} else {
		log.Warnln(logTag, ": can't determine machine id:", err)
	}
	if mem, err := memory.Get(); err == nil {
		log.Infoln(logTag, ": total memory:", mem.Total)
	} else {
		log.Warnln(logTag, ":", err)
	}

	router := mux.NewRouter().StrictSlash(true)
	for _, p := range plugins.ListPlugins() {
		if err := plugins.LoadPlugin(router, p); err != nil {
			log.Fatalln(logTag, ": error loading plugin", p.Name(), ":", err)
		}
	}

	if listPlugins {
		fmt.Println(plugins.ListPluginsStr())
	}

	// CORS policy
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"*"},
	})
	handler := new(chain).Wrap(c.Handler(router).ServeHTTP)

	addr := fmt.Sprintf("%s:%d", address, port)
	server := &http.Server{Addr: addr, Handler: handler}

	idleConnectionsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		if err := server.Shutdown(context.Background()); err != nil {
			log.Errorln(logTag, ": server shutdown:", err)
		}
		close(idleConnectionsClosed)
	}()

	health.NewWatcher(fmt.Sprintf("http://%s/health", addr)).Start("@every 1m")

	log.Infoln(logTag, ": listening on", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalln(logTag, ":", err)
	}
	<-idleConnectionsClosed
}
