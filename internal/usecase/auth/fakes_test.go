package auth

import (
	"context"
	"sync"

	"next-hire/internal/domain/notification"
	"next-hire/internal/domain/user"

	"github.com/google/uuid"
)

type memUsers struct {
	mu   sync.Mutex
	rows map[string]user.User
}

func newMemUsers() *memUsers { return &memUsers{rows: map[string]user.User{}} }

func (m *memUsers) Create(_ context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = user.NormalizeEmail(u.Email)
	if _, ok := m.rows[u.Email]; ok {
		return user.User{}, user.ErrConflict
	}
	m.rows[u.Email] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[user.NormalizeEmail(email)]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateByEmail(_ context.Context, email string, upd user.UserUpdate) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = user.NormalizeEmail(email)
	u, ok := m.rows[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	m.rows[email] = u
	return u, nil
}

func (m *memUsers) DeleteByEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = user.NormalizeEmail(email)
	if _, ok := m.rows[email]; !ok {
		return user.ErrNotFound
	}
	delete(m.rows, email)
	return nil
}

type memPending struct {
	mu        sync.Mutex
	rows      map[string]user.PendingRegistration
	deleteErr error
}

func newMemPending() *memPending {
	return &memPending{rows: map[string]user.PendingRegistration{}}
}

func (m *memPending) Create(_ context.Context, p user.PendingRegistration) (user.PendingRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Email = user.NormalizeEmail(p.Email)
	if _, ok := m.rows[p.Email]; ok {
		return user.PendingRegistration{}, user.ErrConflict
	}
	m.rows[p.Email] = p
	return p, nil
}

func (m *memPending) GetByEmail(_ context.Context, email string) (user.PendingRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[user.NormalizeEmail(email)]
	if !ok {
		return user.PendingRegistration{}, user.ErrNotFound
	}
	return p, nil
}

func (m *memPending) UpdateByEmail(_ context.Context, email string, upd user.PendingUpdate) (user.PendingRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = user.NormalizeEmail(email)
	p, ok := m.rows[email]
	if !ok {
		return user.PendingRegistration{}, user.ErrNotFound
	}
	if upd.OTPHash != nil {
		p.OTPHash = *upd.OTPHash
	}
	if upd.OTPExpiresAt != nil {
		p.OTPExpiresAt = *upd.OTPExpiresAt
	}
	m.rows[email] = p
	return p, nil
}

func (m *memPending) DeleteByEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	email = user.NormalizeEmail(email)
	if _, ok := m.rows[email]; !ok {
		return user.ErrNotFound
	}
	delete(m.rows, email)
	return nil
}

type memResets struct {
	mu   sync.Mutex
	rows map[string]user.ResetToken
}

func newMemResets() *memResets { return &memResets{rows: map[string]user.ResetToken{}} }

func (m *memResets) Create(_ context.Context, t user.ResetToken) (user.ResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.Email = user.NormalizeEmail(t.Email)
	if _, ok := m.rows[t.Email]; ok {
		return user.ResetToken{}, user.ErrConflict
	}
	m.rows[t.Email] = t
	return t, nil
}

func (m *memResets) GetByEmail(_ context.Context, email string) (user.ResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[user.NormalizeEmail(email)]
	if !ok {
		return user.ResetToken{}, user.ErrNotFound
	}
	return t, nil
}

func (m *memResets) UpdateByEmail(_ context.Context, email string, upd user.ResetTokenUpdate) (user.ResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = user.NormalizeEmail(email)
	t, ok := m.rows[email]
	if !ok {
		return user.ResetToken{}, user.ErrNotFound
	}
	if upd.Token != nil {
		t.Token = *upd.Token
	}
	if upd.ExpiresAt != nil {
		t.ExpiresAt = *upd.ExpiresAt
	}
	m.rows[email] = t
	return t, nil
}

func (m *memResets) DeleteByEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, user.NormalizeEmail(email))
	return nil
}

type outbox struct {
	mu   sync.Mutex
	sent []notification.Email
	err  error
}

func (o *outbox) Send(_ context.Context, m notification.Email) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, m)
	return nil
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}
