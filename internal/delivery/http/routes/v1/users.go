package v1

import (
	"next-hire/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler) {
	if r == nil || userHandler == nil {
		return
	}

	userHandler.RegisterRoutes(r)
}
