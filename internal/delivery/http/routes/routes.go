package routes

import (
	"next-hire/internal/delivery/http/handler"
	v1 "next-hire/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	jobsWS fiber.Handler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, jobsWS fiber.Handler, api v1.Handlers) *Registry {
	return &Registry{health: health, jobsWS: jobsWS, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.jobsWS != nil {
		app.Get("/ws/jobs", r.jobsWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}
