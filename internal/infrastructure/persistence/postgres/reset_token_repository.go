package postgres

import (
	"context"
	"fmt"

	"next-hire/internal/database"
	"next-hire/internal/domain/user"

	"github.com/google/uuid"
)

const resetTokenColumns = `id, email, token, expires_at, created_at, updated_at`

type ResetTokenRepository struct {
	db database.DB
}

func NewResetTokenRepository(db database.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Create(ctx context.Context, t user.ResetToken) (user.ResetToken, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO password_reset_tokens (id, email, token, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resetTokenColumns,
		t.ID, user.NormalizeEmail(t.Email), t.Token, t.ExpiresAt,
	)
	out, err := scanResetToken(row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ResetToken{}, user.ErrConflict
		}
		return user.ResetToken{}, fmt.Errorf("insert reset token: %w", err)
	}
	return out, nil
}

func (r *ResetTokenRepository) GetByEmail(ctx context.Context, email string) (user.ResetToken, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resetTokenColumns+` FROM password_reset_tokens WHERE email = $1`, user.NormalizeEmail(email))
	return r.one(row)
}

func (r *ResetTokenRepository) UpdateByEmail(ctx context.Context, email string, upd user.ResetTokenUpdate) (user.ResetToken, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE password_reset_tokens SET
			token = COALESCE($2::text, token),
			expires_at = COALESCE($3::timestamptz, expires_at),
			updated_at = now()
		 WHERE email = $1
		 RETURNING `+resetTokenColumns,
		user.NormalizeEmail(email), upd.Token, upd.ExpiresAt,
	)
	return r.one(row)
}

func (r *ResetTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	n, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE email = $1`, user.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *ResetTokenRepository) one(row database.Row) (user.ResetToken, error) {
	t, err := scanResetToken(row)
	if err != nil {
		if isNoRows(err) {
			return user.ResetToken{}, user.ErrNotFound
		}
		return user.ResetToken{}, err
	}
	return t, nil
}

func scanResetToken(row database.Row) (user.ResetToken, error) {
	var t user.ResetToken
	if err := row.Scan(&t.ID, &t.Email, &t.Token, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return user.ResetToken{}, err
	}
	return t, nil
}
