package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is a verified account.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PendingRegistration holds a sign-up until its OTP is confirmed.
type PendingRegistration struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	OTPHash      string
	OTPExpiresAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p PendingRegistration) Expired(now time.Time) bool {
	return !now.Before(p.OTPExpiresAt)
}

type ResetToken struct {
	ID        uuid.UUID
	Email     string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserUpdate struct {
	FullName     *string
	PasswordHash *string
	Role         *Role
}

type PendingUpdate struct {
	OTPHash      *string
	OTPExpiresAt *time.Time
}

type ResetTokenUpdate struct {
	Token     *string
	ExpiresAt *time.Time
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
