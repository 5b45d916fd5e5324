package routes

import (
	"fate-inyeon/internal/delivery/http/handler"
	"fate-inyeon/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every HTTP entry point of the service. Nil handlers are
// skipped so tests can mount a subset.
type Registry struct {
	Auth       *middleware.AuthMiddleware
	Health     *handler.HealthHandler
	Users      *handler.AuthHandler
	Profiles   *handler.ProfileHandler
	Candidates *handler.CandidateHandler
	Matches    *handler.MatchHandler
	Realtime   fiber.Handler
	Metrics    bool
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Metrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	if r.Realtime != nil && r.Auth != nil {
		app.Get("/ws", r.Auth.QueryTokenMiddleware(), r.Realtime)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	users := api.Group("/users")
	if r.Users != nil {
		r.Users.RegisterRoutes(users)
	}
	if r.Auth == nil {
		return
	}
	authMw := r.Auth.Middleware()

	// signup and login are matched before this group's middleware.
	if r.Profiles != nil {
		r.Profiles.RegisterRoutes(users.Group("", authMw))
	}
	if r.Candidates != nil {
		r.Candidates.RegisterRoutes(api.Group("/candidates", authMw))
	}
	if r.Matches != nil {
		r.Matches.RegisterRoutes(api.Group("/matches", authMw))
	}
}
