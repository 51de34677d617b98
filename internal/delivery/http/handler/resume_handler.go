package handler

import (
	"context"
	"fmt"
	"io"

	"next-hire/internal/delivery/http/middleware"
	"next-hire/internal/pkg/response"
	"next-hire/internal/usecase/resume"

	"github.com/gofiber/fiber/v3"
)

const resumeFormField = "resume"

type ResumeAnalyzer interface {
	Analyze(ctx context.Context, doc resume.Document) ([]resume.Suggestion, error)
}

type ResumeHandler struct {
	uc ResumeAnalyzer
}

func NewResumeHandler(uc ResumeAnalyzer) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) HandleAnalyze(c fiber.Ctx) error {
	fh, err := c.FormFile(resumeFormField)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "no file uploaded",
			map[string]string{resumeFormField: "resume file is required"}, err)
	}
	if fh.Size > resume.MaxFileSize {
		return middleware.NewAppError(fiber.StatusBadRequest, "file too large",
			map[string]string{resumeFormField: "file size must be less than 10MB"}, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, resume.MaxFileSize+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	suggestions, err := h.uc.Analyze(c.Context(), resume.Document{
		Filename: fh.Filename,
		MIMEType: fh.Header.Get(fiber.HeaderContentType),
		Size:     fh.Size,
		Data:     data,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "resume analyzed successfully", suggestions)
}
