package handler

import (
	"context"

	"next-hire/internal/delivery/http/middleware"
	"next-hire/internal/domain/job"
	"next-hire/internal/pkg/response"
	"next-hire/internal/query"
	jobuc "next-hire/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobCatalog interface {
	List(ctx context.Context, req query.Request) (query.Result[job.Posting], error)
	Create(ctx context.Context, in jobuc.CreateInput, ownerID uuid.UUID) (job.Posting, error)
	Delete(ctx context.Context, rawID string) (job.Posting, error)
}

type JobsHandler struct {
	uc JobCatalog
}

func NewJobsHandler(uc JobCatalog) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	res, err := h.uc.List(c.Context(), query.Request(c.Queries()))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "jobs retrieved successfully", res)
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	var req jobuc.CreateInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadBody(err)
	}

	p, err := h.uc.Create(c.Context(), req, u.ID)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "job created successfully", p)
}

func (h *JobsHandler) HandleDeleteJob(c fiber.Ctx) error {
	p, err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "job deleted successfully", p)
}
