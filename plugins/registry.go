package plugins

import (
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const logTag = "[registry]"

// plugins is a map of a unique identifier, usually the plugin name,
// to the Plugin. So, in practice all plugins must have a name,
// preferably following the same practice while naming a package.
var plugins = make(map[string]Plugin)

// Plugin is a type that holds information about the plugin.
type Plugin interface {
	// Name returns the name of the plugin. Name of the plugin must be
	// unique as it is the name of the plugin that is used as a key
	// to identify a plugin in the plugins map.
	Name() string

	// InitFunc returns the plugin's setup function that is executed
	// before the plugin routes are loaded in the router.
	InitFunc() error

	// Routes returns the http routes that a plugin handles or is
	// associated with.
	Routes() []Route
}

// RegisterPlugin plugs in plugin. All plugins must have a name:
// preferably lowercase and one word. The name of the plugin must
// be unique. A plugin, however, may not define any routes, but
// still be useful, like a middleware.
func RegisterPlugin(p Plugin) {
	name := p.Name()
	if name == "" {
		panic("plugin must have a name.")
	}
	if _, dup := plugins[name]; dup {
		panic("plugin named " + name + " is already registered.")
	}
	plugins[name] = p
}

// LoadPlugin is currently responsible for two things: firstly,
// it executes the plugin's initFunc to ensure it makes all the
// initializations before the plugin is functional and second,
// it registers the routes to the router that are associated with
// that plugin.
func LoadPlugin(router *mux.Router, p Plugin) error {
	log.Infoln(logTag, ": initializing plugin:", p.Name())
	err := p.InitFunc()
	if err != nil {
		return err
	}
	routes := p.Routes()
	// Concrete paths must be registered ahead of prefix matchers.
	RouteBy(func(r1, r2 Route) bool {
		return r1.PathPrefix == "" && r2.PathPrefix != ""
	}).RouteSort(routes)
	for _, r := range routes {
		route := router.Methods(r.Methods...).
			Name(r.Name).
			HandlerFunc(r.HandlerFunc)
		if r.PathPrefix != "" {
			route = route.PathPrefix(r.PathPrefix)
		} else {
			route = route.Path(r.Path)
		}
		if err := route.GetError(); err != nil {
			return err
		}
	}
	return nil
}

// ListPluginsStr returns a string listing the registered plugins.
func ListPluginsStr() string {
	str := "Registered plugins:\n"
	pl := ListPlugins()
	for i := 0; i < len(pl); i++ {
		str += "\t" + strconv.Itoa(i+1) + ". " + pl[i].Name() + "\n"
	}
	return str
}

// ListPlugins returns the list of plugins that are currently registered.
func ListPlugins() []Plugin {
	var list []Plugin
	for _, p := range plugins {
		list = append(list, p)
	}
	return list
}
