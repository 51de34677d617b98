package handler

import (
	"context"
	"errors"
	"time"

	"next-hire/internal/delivery/http/dto"
	"next-hire/internal/infrastructure/cache"
	"next-hire/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health fails only when the database is unreachable; the cache is optional.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	out := dto.HealthResponse{Status: "ok", Database: "up", Cache: "up"}
	if h.db == nil || h.db.Ping(ctx) != nil {
		out.Status = "degraded"
		out.Database = "down"
	}
	if h.cache == nil {
		out.Cache = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		out.Cache = "down"
		if errors.Is(err, cache.ErrUnavailable) {
			out.Cache = "disabled"
		}
	}

	if out.Database == "down" {
		return response.Error(c, fiber.StatusServiceUnavailable, "service unavailable", "", out)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
