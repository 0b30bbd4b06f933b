package users

import (
	"net/http"

	"github.com/appforge/pipegate/plugins"
)

func (u *Users) routes() []plugins.Route {
	read := readPipeline().Wrap
	create := createPipeline().Wrap
	routes := []plugins.Route{
		{
			Name:        "Get users",
			Methods:     []string{http.MethodGet},
			Path:        "/api/users",
			HandlerFunc: read(u.getUsers()),
			Description: "Returns all the users",
		},
		{
			Name:        "Get user with {id}",
			Methods:     []string{http.MethodGet},
			Path:        "/api/users/{id}",
			HandlerFunc: read(u.getUserWithID()),
			Description: "Returns the user with {id}",
		},
		{
			Name:        "Post user",
			Methods:     []string{http.MethodPost},
			Path:        "/api/users",
			HandlerFunc: create(u.postUser()),
			Description: "Creates a new user",
		},
	}
	return routes
}
