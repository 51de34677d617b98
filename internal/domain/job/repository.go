package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, p Posting) (Posting, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (Posting, error)
}
