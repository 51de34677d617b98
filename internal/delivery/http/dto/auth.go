package dto

import (
	"time"

	"next-hire/internal/domain/user"
	"next-hire/internal/usecase/auth"

	"github.com/google/uuid"
)

type EmailRequest struct {
	Email string `json:"email"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PendingRegistrationResponse is an unverified signup without its secrets.
type PendingRegistrationResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         user.Role `json:"role"`
	OTPExpiresAt time.Time `json:"otp_expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewPendingRegistrationResponse(p user.PendingRegistration) PendingRegistrationResponse {
	return PendingRegistrationResponse{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     p.FullName,
		Role:         p.Role,
		OTPExpiresAt: p.OTPExpiresAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type SessionResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func NewSessionResponse(s auth.Session) SessionResponse {
	return SessionResponse{
		User:         NewUserResponse(s.User),
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
	}
}
