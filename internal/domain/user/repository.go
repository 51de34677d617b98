package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("user already exists")
)

// Repository stores verified accounts. Emails are normalized by the
// implementation before they reach storage.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateByEmail(ctx context.Context, email string, upd UserUpdate) (User, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type PendingRepository interface {
	Create(ctx context.Context, p PendingRegistration) (PendingRegistration, error)
	GetByEmail(ctx context.Context, email string) (PendingRegistration, error)
	UpdateByEmail(ctx context.Context, email string, upd PendingUpdate) (PendingRegistration, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type ResetTokenRepository interface {
	Create(ctx context.Context, t ResetToken) (ResetToken, error)
	GetByEmail(ctx context.Context, email string) (ResetToken, error)
	UpdateByEmail(ctx context.Context, email string, upd ResetTokenUpdate) (ResetToken, error)
	DeleteByEmail(ctx context.Context, email string) error
}
