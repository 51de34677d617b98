package postgres

import (
	"context"
	"fmt"

	"next-hire/internal/database"
	"next-hire/internal/domain/user"

	"github.com/google/uuid"
)

const pendingColumns = `id, email, full_name, password_hash, role, otp_hash, otp_expires_at, created_at, updated_at`

type PendingRegistrationRepository struct {
	db database.DB
}

func NewPendingRegistrationRepository(db database.DB) *PendingRegistrationRepository {
	return &PendingRegistrationRepository{db: db}
}

func (r *PendingRegistrationRepository) Create(ctx context.Context, p user.PendingRegistration) (user.PendingRegistration, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO pending_registrations (id, email, full_name, password_hash, role, otp_hash, otp_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+pendingColumns,
		p.ID, user.NormalizeEmail(p.Email), p.FullName, p.PasswordHash, string(p.Role), p.OTPHash, p.OTPExpiresAt,
	)
	out, err := scanPending(row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.PendingRegistration{}, user.ErrConflict
		}
		return user.PendingRegistration{}, fmt.Errorf("insert pending registration: %w", err)
	}
	return out, nil
}

func (r *PendingRegistrationRepository) GetByEmail(ctx context.Context, email string) (user.PendingRegistration, error) {
	row := r.db.QueryRow(ctx, `SELECT `+pendingColumns+` FROM pending_registrations WHERE email = $1`, user.NormalizeEmail(email))
	return r.one(row)
}

func (r *PendingRegistrationRepository) UpdateByEmail(ctx context.Context, email string, upd user.PendingUpdate) (user.PendingRegistration, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE pending_registrations SET
			otp_hash = COALESCE($2::text, otp_hash),
			otp_expires_at = COALESCE($3::timestamptz, otp_expires_at),
			updated_at = now()
		 WHERE email = $1
		 RETURNING `+pendingColumns,
		user.NormalizeEmail(email), upd.OTPHash, upd.OTPExpiresAt,
	)
	return r.one(row)
}

func (r *PendingRegistrationRepository) DeleteByEmail(ctx context.Context, email string) error {
	n, err := r.db.Exec(ctx, `DELETE FROM pending_registrations WHERE email = $1`, user.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("delete pending registration: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PendingRegistrationRepository) one(row database.Row) (user.PendingRegistration, error) {
	p, err := scanPending(row)
	if err != nil {
		if isNoRows(err) {
			return user.PendingRegistration{}, user.ErrNotFound
		}
		return user.PendingRegistration{}, err
	}
	return p, nil
}

func scanPending(row database.Row) (user.PendingRegistration, error) {
	var (
		p    user.PendingRegistration
		role string
	)
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &role, &p.OTPHash, &p.OTPExpiresAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return user.PendingRegistration{}, err
	}
	p.Role = user.Role(role)
	return p, nil
}
