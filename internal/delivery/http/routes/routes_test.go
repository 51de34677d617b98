package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"next-hire/internal/delivery/http/handler"
	"next-hire/internal/delivery/http/middleware"
	v1 "next-hire/internal/delivery/http/routes/v1"
	"next-hire/internal/domain/job"
	"next-hire/internal/domain/user"
	"next-hire/internal/pkg/apperror"
	"next-hire/internal/pkg/jwt"
	"next-hire/internal/query"
	"next-hire/internal/usecase/auth"
	jobuc "next-hire/internal/usecase/job"
	"next-hire/internal/usecase/resume"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	candidate = user.User{ID: uuid.New(), Email: "alice@x.com", FullName: "Alice", Role: user.RoleCandidate}
	recruiter = user.User{ID: uuid.New(), Email: "rec@x.com", FullName: "Rec", Role: user.RoleRecruiter}
)

type fakeAuth struct {
	registered []auth.RegisterInput
	refreshed  string
}

var pendingAlice = user.PendingRegistration{
	ID:           uuid.New(),
	Email:        "alice@x.com",
	FullName:     "Alice",
	PasswordHash: "$2a$10$hash",
	Role:         user.RoleCandidate,
	OTPHash:      "otp-hash",
	OTPExpiresAt: time.Date(2025, 1, 1, 10, 10, 0, 0, time.UTC),
}

func (f *fakeAuth) Register(_ context.Context, in auth.RegisterInput) (user.PendingRegistration, error) {
	if in.Password != in.ConfirmPassword {
		return user.PendingRegistration{}, apperror.BadRequest("validation failed", map[string]string{"confirm_password": "must match password"})
	}
	f.registered = append(f.registered, in)
	return pendingAlice, nil
}

func (f *fakeAuth) VerifyOTP(_ context.Context, in auth.VerifyOTPInput) (auth.Session, error) {
	if in.OTP != "123456" {
		return auth.Session{}, apperror.Unauthorized(apperror.CodeInvalidOTP, "invalid otp")
	}
	return auth.Session{User: candidate, Tokens: jwt.TokenPair{AccessToken: "a", RefreshToken: "r"}}, nil
}

func (f *fakeAuth) ResendOTP(context.Context, string) (user.PendingRegistration, error) {
	return pendingAlice, nil
}

func (f *fakeAuth) Login(context.Context, auth.LoginInput) (auth.Session, error) {
	return auth.Session{}, apperror.Unauthorized(apperror.CodeInvalidCredentials, "invalid credentials")
}

func (f *fakeAuth) Refresh(_ context.Context, tok string) (auth.Session, error) {
	f.refreshed = tok
	return auth.Session{User: candidate, Tokens: jwt.TokenPair{AccessToken: "a2", RefreshToken: "r2"}}, nil
}

func (f *fakeAuth) ForgotPassword(context.Context, string) error { return nil }

func (f *fakeAuth) ResetPassword(context.Context, auth.ResetPasswordInput) error { return nil }

func (f *fakeAuth) Authenticate(_ context.Context, tok string) (user.User, error) {
	switch tok {
	case "cand":
		return candidate, nil
	case "rec":
		return recruiter, nil
	}
	return user.User{}, apperror.Unauthorized(apperror.CodeInvalidAccessToken, "invalid access token")
}

type fakeCatalog struct {
	lastReq   query.Request
	createdBy uuid.UUID
}

func (f *fakeCatalog) List(_ context.Context, req query.Request) (query.Result[job.Posting], error) {
	f.lastReq = req
	return query.Result[job.Posting]{
		Data:       []job.Posting{samplePosting("Go Engineer", uuid.New())},
		Pagination: query.NewPageInfo(1, 10, 1),
	}, nil
}

func (f *fakeCatalog) Create(_ context.Context, in jobuc.CreateInput, owner uuid.UUID) (job.Posting, error) {
	f.createdBy = owner
	return samplePosting(in.Title, owner), nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) (job.Posting, error) {
	return job.Posting{}, apperror.NotFound("job not found")
}

func samplePosting(title string, owner uuid.UUID) job.Posting {
	return job.Posting{
		ID:         uuid.New(),
		Title:      title,
		Type:       job.TypeFullTime,
		Experience: job.Experience{Type: job.ExperienceNone},
		Salary:     job.NewFixedSalary(1000, "USD"),
		Status:     job.StatusActive,
		PostedBy:   job.Owner{ID: owner},
	}
}

type fakeAnalyzer struct {
	got resume.Document
}

func (f *fakeAnalyzer) Analyze(_ context.Context, doc resume.Document) ([]resume.Suggestion, error) {
	f.got = doc
	return []resume.Suggestion{{ID: "1", Type: "improvement", Title: "Add metrics"}}, nil
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type harness struct {
	app      *fiber.App
	auth     *fakeAuth
	catalog  *fakeCatalog
	analyzer *fakeAnalyzer
}

func newHarness(dbErr error) *harness {
	h := &harness{auth: &fakeAuth{}, catalog: &fakeCatalog{}, analyzer: &fakeAnalyzer{}}
	h.app = fiber.New()
	h.app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewRegistry(
		handler.NewHealthHandler(pinger{err: dbErr}, pinger{}),
		nil,
		v1.Handlers{
			Auth:   handler.NewAuthHandler(h.auth),
			Users:  handler.NewUserHandler(),
			Jobs:   handler.NewJobsHandler(h.catalog),
			Resume: handler.NewResumeHandler(h.analyzer),
			AuthMW: middleware.NewAuthMiddleware(h.auth),
		},
	).Register(h.app)
	return h
}

type envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func (h *harness) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (h *harness) doJSON(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	return h.do(t, method, path, token, strings.NewReader(body), fiber.MIMEApplicationJSON)
}

func TestAuthRoutes(t *testing.T) {
	h := newHarness(nil)

	status, env := h.doJSON(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"Alice@X.com","password":"secret1","confirm_password":"secret1","full_name":"Alice"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	var pending struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		FullName     string `json:"full_name"`
		Role         string `json:"role"`
		OTPExpiresAt string `json:"otp_expires_at"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	assert.Equal(t, pendingAlice.ID.String(), pending.ID)
	assert.Equal(t, "alice@x.com", pending.Email)
	assert.Equal(t, "candidate", pending.Role)
	assert.Equal(t, "2025-01-01T10:10:00Z", pending.OTPExpiresAt)
	assert.NotContains(t, string(env.Data), "hash")
	require.Len(t, h.auth.registered, 1)

	status, env = h.doJSON(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"a@x.com","password":"secret1","confirm_password":"nope","full_name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"confirm_password":"must match password"}`, string(env.Errors))

	status, env = h.doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", "", `{"email":"alice@x.com","otp":"000000"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperror.CodeInvalidOTP, env.Code)

	status, env = h.doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", "", `{"email":"alice@x.com","otp":"123456"}`)
	assert.Equal(t, http.StatusOK, status)
	var sess struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	assert.Equal(t, "alice@x.com", sess.User.Email)
	assert.Equal(t, "candidate", sess.User.Role)
	assert.Equal(t, "a", sess.AccessToken)
	assert.NotContains(t, string(env.Data), "password")

	status, env = h.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"alice@x.com","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", env.Message)

	status, env = h.doJSON(t, http.MethodPost, "/api/v1/auth/refresh-token", "", `{"refresh_token":"r"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "r", h.auth.refreshed)
	var refreshed struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &refreshed))
	assert.Equal(t, candidate.ID.String(), refreshed.User.ID)
	assert.Equal(t, "alice@x.com", refreshed.User.Email)
	assert.Equal(t, "a2", refreshed.AccessToken)
	assert.Equal(t, "r2", refreshed.RefreshToken)

	status, env = h.doJSON(t, http.MethodPost, "/api/v1/auth/refresh-token", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"refresh_token":"is required"}`, string(env.Errors))

	status, _ = h.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, status)

	for _, path := range []string{"/resend-otp", "/forgot-password"} {
		status, env = h.doJSON(t, http.MethodPost, "/api/v1/auth"+path, "", `{"email":"alice@x.com"}`)
		assert.Equal(t, http.StatusOK, status, path)
		assert.True(t, env.Success, path)
	}

	_, env = h.doJSON(t, http.MethodPost, "/api/v1/auth/resend-otp", "", `{"email":"alice@x.com"}`)
	assert.Contains(t, string(env.Data), `"otp_expires_at":"2025-01-01T10:10:00Z"`)
	assert.NotContains(t, string(env.Data), "hash")
}

func TestUsersMe(t *testing.T) {
	h := newHarness(nil)

	status, _ := h.doJSON(t, http.MethodGet, "/api/v1/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := h.doJSON(t, http.MethodGet, "/api/v1/users/me", "cand", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"email":"alice@x.com"`)
}

func TestJobRoutes(t *testing.T) {
	h := newHarness(nil)

	status, env := h.doJSON(t, http.MethodGet, "/api/v1/jobs?search=engineer&page=2&limit=5&status=active", "cand", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, query.Request{"search": "engineer", "page": "2", "limit": "5", "status": "active"}, h.catalog.lastReq)
	assert.Contains(t, string(env.Data), `"pagination"`)

	status, env = h.doJSON(t, http.MethodPost, "/api/v1/jobs", "cand", `{"title":"x"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperror.CodeForbidden, env.Code)

	status, _ = h.doJSON(t, http.MethodPost, "/api/v1/jobs", "rec", `{"title":"Go Engineer"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, recruiter.ID, h.catalog.createdBy)

	status, env = h.doJSON(t, http.MethodDelete, "/api/v1/jobs/"+uuid.NewString(), "rec", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "job not found", env.Message)

	status, _ = h.doJSON(t, http.MethodDelete, "/api/v1/jobs/"+uuid.NewString(), "cand", "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestResumeRoute(t *testing.T) {
	h := newHarness(nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="resume"; filename="cv.txt"`)
	hdr.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("Go developer"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	status, env := h.do(t, http.MethodPost, "/api/v1/resume-analysis", "cand", &buf, mw.FormDataContentType())
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"title":"Add metrics"`)
	assert.Equal(t, "cv.txt", h.analyzer.got.Filename)
	assert.Equal(t, "text/plain", h.analyzer.got.MIMEType)
	assert.Equal(t, []byte("Go developer"), h.analyzer.got.Data)

	var empty bytes.Buffer
	mw = multipart.NewWriter(&empty)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())
	status, env = h.do(t, http.MethodPost, "/api/v1/resume-analysis", "cand", &empty, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"resume":"resume file is required"}`, string(env.Errors))

	status, _ = h.do(t, http.MethodPost, "/api/v1/resume-analysis", "", strings.NewReader(""), "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealth(t *testing.T) {
	status, env := newHarness(nil).doJSON(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","database":"up","cache":"up"}`, string(env.Data))

	status, env = newHarness(errors.New("down")).doJSON(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, env.Success)
	assert.JSONEq(t, `{"status":"degraded","database":"down","cache":"up"}`, string(env.Errors))
}
