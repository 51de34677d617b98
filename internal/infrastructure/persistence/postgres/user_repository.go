package postgres

import (
	"context"
	"fmt"

	"next-hire/internal/database"
	"next-hire/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, full_name, password_hash, role, created_at, updated_at`

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		u.ID, user.NormalizeEmail(u.Email), u.FullName, u.PasswordHash, string(u.Role),
	)
	out, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrConflict
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.one(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, user.NormalizeEmail(email))
	return r.one(row)
}

func (r *UserRepository) UpdateByEmail(ctx context.Context, email string, upd user.UserUpdate) (user.User, error) {
	var role *string
	if upd.Role != nil {
		s := string(*upd.Role)
		role = &s
	}
	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			full_name = COALESCE($2::text, full_name),
			password_hash = COALESCE($3::text, password_hash),
			role = COALESCE($4::text, role),
			updated_at = now()
		 WHERE email = $1
		 RETURNING `+userColumns,
		user.NormalizeEmail(email), upd.FullName, upd.PasswordHash, role,
	)
	return r.one(row)
}

func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) error {
	n, err := r.db.Exec(ctx, `DELETE FROM users WHERE email = $1`, user.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) one(row database.Row) (user.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u    user.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
