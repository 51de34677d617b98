package seeder

import (
	"context"
	"errors"
	"fmt"

	"next-hire/internal/database"
	"next-hire/internal/domain/user"
	"next-hire/internal/pkg/credential"

	"github.com/google/uuid"
)

const (
	DemoRecruiterEmail = "recruiter@nexthire.dev"
	DemoCandidateEmail = "candidate@nexthire.dev"
	DemoAdminEmail     = "admin@nexthire.dev"
)

type UsersSeeder struct {
	Hasher   *credential.PasswordHasher
	Password string
}

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Requires() []Table {
	return []Table{{Name: "users", Columns: []string{"id", "email", "full_name", "password_hash", "role", "created_at"}}}
}

func (s UsersSeeder) Run(ctx context.Context, tx database.Tx) error {
	if s.Hasher == nil {
		return errors.New("nil password hasher")
	}

	hash, err := s.Hasher.Hash(s.Password)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for _, it := range demoUsers() {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, email, full_name, password_hash, role) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING`,
			uuid.New(),
			user.NormalizeEmail(it.Email),
			it.FullName,
			hash,
			string(it.Role),
		); err != nil {
			return fmt.Errorf("insert %s: %w", it.Email, err)
		}
	}
	return nil
}

func demoUsers() []user.User {
	return []user.User{
		{Email: DemoAdminEmail, FullName: "Next Hire Admin", Role: user.RoleAdmin},
		{Email: DemoRecruiterEmail, FullName: "Rina Recruiter", Role: user.RoleRecruiter},
		{Email: DemoCandidateEmail, FullName: "Cahya Candidate", Role: user.RoleCandidate},
	}
}
