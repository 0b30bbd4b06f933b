package users

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/appforge/pipegate/plugins"
)

const (
	pluginName = "users"
	logTag     = "[users]"
)

var (
	singleton *Users
	once      sync.Once
)

// Users plugin serves the user collection.
type Users struct {
	store *store
}

func init() {
	plugins.RegisterPlugin(Instance())
}

// Instance returns the singleton instance of the Users plugin.
func Instance() *Users {
	once.Do(func() {
		singleton = &Users{}
	})
	return singleton
}

// Name returns the name of the plugin: "users".
func (u *Users) Name() string {
	return pluginName
}

// InitFunc initializes the in-memory user store before the plugin
// routes are loaded.
func (u *Users) InitFunc() error {
	log.Infoln(logTag, ": initializing plugin:", pluginName)
	u.store = newStore(seedUsers()...)
	return nil
}

// Routes returns the http routes the plugin serves.
func (u *Users) Routes() []plugins.Route {
	return u.routes()
}
