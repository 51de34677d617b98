package middleware

import (
	"errors"
	"fmt"

	"next-hire/internal/pkg/apperror"
	"next-hire/internal/pkg/logger"
	"next-hire/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AppError is a transport-level failure raised before a request reaches a
// usecase, such as a malformed body or a missing bearer token.
type AppError struct {
	StatusCode int
	Message    string
	Code       string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(l *zap.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger.OrNop(l)}
}

type normalized struct {
	status  int
	message string
	code    string
	errors  any
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, "", nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		n := normalizeError(err)
		if n.status >= fiber.StatusInternalServerError {
			m.logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", n.status),
				zap.Error(err),
			)
		}
		return response.Error(c, n.status, n.message, n.code, n.errors)
	}
}

func normalizeError(err error) normalized {
	internal := normalized{status: fiber.StatusInternalServerError, message: response.MessageInternalServerError}
	if err == nil {
		return internal
	}

	if ae, ok := apperror.As(err); ok {
		status := statusForKind(ae.Kind)
		if status >= fiber.StatusInternalServerError {
			return internal
		}
		out := normalized{status: status, message: ae.Message, code: ae.Code}
		if len(ae.Fields) > 0 {
			out.errors = ae.Fields
		}
		if out.message == "" {
			out.message = response.DefaultMessage(status)
		}
		return out
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 || appErr.StatusCode >= fiber.StatusInternalServerError {
			return internal
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(appErr.StatusCode)
		}
		return normalized{status: appErr.StatusCode, message: msg, code: appErr.Code, errors: appErr.Data}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= fiber.StatusInternalServerError {
			return internal
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return normalized{status: status, message: msg}
	}

	return internal
}

func statusForKind(k apperror.Kind) int {
	switch k {
	case apperror.KindBadRequest:
		return fiber.StatusBadRequest
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// BadBody is the error handlers return when a request body cannot be decoded.
func BadBody(err error) *AppError {
	return NewAppError(fiber.StatusBadRequest, "invalid request body", nil, fmt.Errorf("decode body: %w", err))
}
