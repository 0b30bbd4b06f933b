package users

import (
	"github.com/appforge/pipegate/middleware/auth"
	"github.com/appforge/pipegate/middleware/pipeline"
	"github.com/appforge/pipegate/middleware/ratelimiter"
	"github.com/appforge/pipegate/middleware/useragent"
	"github.com/appforge/pipegate/middleware/validate"
	"github.com/appforge/pipegate/schema"
	"github.com/appforge/pipegate/util"
)

// userSchema guards the create-user body. Shared by reference across
// all requests to the route.
var userSchema = schema.New(
	schema.Field{Name: "name", Type: schema.String, Required: true, Min: schema.Bound(3), Max: schema.Bound(30)},
	schema.Field{Name: "email", Type: schema.String, Required: true, Min: schema.Bound(3), Max: schema.Bound(254)},
	schema.Field{Name: "age", Type: schema.Integer, Min: schema.Bound(0), Max: schema.Bound(120)},
	schema.Field{Name: "password", Type: schema.String, Min: schema.Bound(6)},
)

func defaultStages() []pipeline.Stage {
	return []pipeline.Stage{
		{Name: "ratelimit", Middleware: ratelimiter.Limit()},
		{Name: "token", Middleware: auth.TokenCheck()},
		{Name: "useragent", Middleware: useragent.Check()},
	}
}

// readPipeline guards the read routes.
func readPipeline() *pipeline.Pipeline {
	return pipeline.New(pluginName, defaultStages()...).
		WithTimeout(util.PipelineTimeout())
}

// createPipeline additionally validates the request body.
func createPipeline() *pipeline.Pipeline {
	stages := append(defaultStages(), pipeline.Stage{
		Name:       "validate",
		Middleware: validate.Body(userSchema),
	})
	return pipeline.New(pluginName, stages...).
		WithTimeout(util.PipelineTimeout())
}
