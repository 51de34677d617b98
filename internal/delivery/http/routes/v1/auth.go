package v1

import (
	"next-hire/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterAuth(r fiber.Router, authHandler *handler.AuthHandler) {
	if r == nil || authHandler == nil {
		return
	}

	authHandler.RegisterRoutes(r)
}
