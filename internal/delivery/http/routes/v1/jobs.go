package v1

import (
	"next-hire/internal/delivery/http/handler"
	"next-hire/internal/delivery/http/middleware"
	"next-hire/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, jobsHandler *handler.JobsHandler) {
	if r == nil || jobsHandler == nil {
		return
	}

	canManage := middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin)

	r.Get("/", jobsHandler.HandleListJobs)
	r.Post("/", canManage, jobsHandler.HandleCreateJob)
	r.Delete("/:id", canManage, jobsHandler.HandleDeleteJob)
}
