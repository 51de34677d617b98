package handler

import (
	"context"

	"next-hire/internal/delivery/http/dto"
	"next-hire/internal/delivery/http/middleware"
	"next-hire/internal/domain/user"
	"next-hire/internal/pkg/response"
	"next-hire/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (user.PendingRegistration, error)
	VerifyOTP(ctx context.Context, in auth.VerifyOTPInput) (auth.Session, error)
	ResendOTP(ctx context.Context, email string) (user.PendingRegistration, error)
	Login(ctx context.Context, in auth.LoginInput) (auth.Session, error)
	Refresh(ctx context.Context, refreshToken string) (auth.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in auth.ResetPasswordInput) error
	Authenticate(ctx context.Context, accessToken string) (user.User, error)
}

type AuthHandler struct {
	uc AuthService
}

func NewAuthHandler(uc AuthService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/resend-otp", h.ResendOTP)
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.RefreshToken)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req auth.RegisterInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadBody(err)
	}

	p, err := h.uc.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated,
		"registration successful, check your email for the verification code",
		dto.NewPendingRegistrationResponse(p))
}

func (h *AuthHandler) VerifyOTP(c fiber.Ctx) error {
	var req auth.VerifyOTPInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadBody(err)
	}

	sess, err := h.uc.VerifyOTP(c.Context(), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "email verified successfully", dto.NewSessionResponse(sess))
}

func (h *AuthHandler) ResendOTP(c fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadBody(err)
	}

	p, err := h.uc.ResendOTP(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "verification code resent", dto.NewPendingRegistrationResponse(p))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req auth.LoginInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadBody(err)
	}

	sess, err := h.uc.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "login successful", dto.NewSessionResponse(sess))
}

// RefreshToken reads the token from the body, falling back to the bearer header.
func (h *AuthHandler) RefreshToken(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.BadBody(err)
		}
	}
	tok := req.RefreshToken
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed",
			map[string]string{"refresh_token": "is required"}, nil)
	}

	sess, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "token refreshed", dto.NewSessionResponse(sess))
}

func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadBody(err)
	}

	if err := h.uc.ForgotPassword(c.Context(), req.Email); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "password reset email sent", nil)
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req auth.ResetPasswordInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadBody(err)
	}

	if err := h.uc.ResetPassword(c.Context(), req); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "password reset successful", nil)
}
