package v1

import (
	"next-hire/internal/delivery/http/handler"
	"next-hire/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Users  *handler.UserHandler
	Jobs   *handler.JobsHandler
	Resume *handler.ResumeHandler
	AuthMW *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.AuthMW == nil {
		return
	}

	RegisterAuth(r.Group("/auth"), h.Auth)

	requireAuth := h.AuthMW.Middleware()
	RegisterUsers(r.Group("/users", requireAuth), h.Users)
	RegisterJobs(r.Group("/jobs", requireAuth), h.Jobs)
	RegisterResume(r, h.Resume, requireAuth)
}
