package v1

import (
	"next-hire/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterResume(r fiber.Router, resumeHandler *handler.ResumeHandler, requireAuth fiber.Handler) {
	if r == nil || resumeHandler == nil {
		return
	}

	r.Post("/resume-analysis", requireAuth, resumeHandler.HandleAnalyze)
}
