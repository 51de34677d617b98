package auth

import (
	"context"
	"errors"
	"time"

	"next-hire/internal/domain/notification"
	"next-hire/internal/domain/user"
	"next-hire/internal/pkg/apperror"
	"next-hire/internal/pkg/credential"
	"next-hire/internal/pkg/jwt"
	"next-hire/internal/pkg/logger"
	"next-hire/internal/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultOTPTTL = 10 * time.Minute

type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name" validate:"required,max=120"`
	Role            string `json:"role" validate:"omitempty,oneof=candidate recruiter"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Session is returned by every operation that signs a user in.
type Session struct {
	User   user.User
	Tokens jwt.TokenPair
}

type Options struct {
	OTPTTL      time.Duration
	ResetTTL    time.Duration
	FrontendURL string
}

// Service drives an account through NONE -> PENDING -> VERIFIED.
type Service struct {
	users   user.Repository
	pending user.PendingRepository
	resets  user.ResetTokenRepository

	hasher *credential.PasswordHasher
	tokens jwt.Service
	mailer notification.Sender
	valid  *validator.Validator
	logger *zap.Logger

	otpTTL      time.Duration
	resetTTL    time.Duration
	frontendURL string

	now         func() time.Time
	generateOTP func() (string, error)
}

func NewService(
	users user.Repository,
	pending user.PendingRepository,
	resets user.ResetTokenRepository,
	hasher *credential.PasswordHasher,
	tokens jwt.Service,
	mailer notification.Sender,
	l *zap.Logger,
	opts Options,
) *Service {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = DefaultOTPTTL
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = jwt.DefaultResetExpiresIn
	}
	return &Service{
		users:       users,
		pending:     pending,
		resets:      resets,
		hasher:      hasher,
		tokens:      tokens,
		mailer:      mailer,
		valid:       validator.New(),
		logger:      logger.OrNop(l),
		otpTTL:      opts.OTPTTL,
		resetTTL:    opts.ResetTTL,
		frontendURL: opts.FrontendURL,
		now:         time.Now,
		generateOTP: credential.GenerateOTP,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.PendingRegistration, error) {
	if fields := s.valid.Struct(in); fields != nil {
		return user.PendingRegistration{}, apperror.BadRequest("validation failed", fields)
	}
	email := user.NormalizeEmail(in.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return user.PendingRegistration{}, apperror.Conflict("email already registered")
	} else if !errors.Is(err, user.ErrNotFound) {
		return user.PendingRegistration{}, apperror.Internalf(err, "lookup user")
	}

	if _, err := s.pending.GetByEmail(ctx, email); err == nil {
		return user.PendingRegistration{}, errEmailNotVerified()
	} else if !errors.Is(err, user.ErrNotFound) {
		return user.PendingRegistration{}, apperror.Internalf(err, "lookup pending registration")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return user.PendingRegistration{}, apperror.Internalf(err, "hash password")
	}
	otp, err := s.generateOTP()
	if err != nil {
		return user.PendingRegistration{}, apperror.Internalf(err, "generate otp")
	}

	role := user.Role(in.Role)
	if role == "" {
		role = user.RoleCandidate
	}

	p, err := s.pending.Create(ctx, user.PendingRegistration{
		ID:           uuid.New(),
		Email:        email,
		FullName:     in.FullName,
		PasswordHash: hash,
		Role:         role,
		OTPHash:      credential.HashOTP(otp),
		OTPExpiresAt: s.now().Add(s.otpTTL),
	})
	if err != nil {
		if errors.Is(err, user.ErrConflict) {
			return user.PendingRegistration{}, errEmailNotVerified()
		}
		return user.PendingRegistration{}, apperror.Internalf(err, "create pending registration")
	}

	if err := s.mailer.Send(ctx, notification.OTPEmail(p.Email, p.FullName, otp, s.otpTTL)); err != nil {
		return user.PendingRegistration{}, apperror.Internalf(err, "send otp email")
	}

	s.logger.Info("registration pending", zap.String("email", p.Email), zap.String("role", string(p.Role)))
	return sanitizePending(p), nil
}

func (s *Service) VerifyOTP(ctx context.Context, in VerifyOTPInput) (Session, error) {
	if fields := s.valid.Struct(in); fields != nil {
		return Session{}, apperror.BadRequest("validation failed", fields)
	}
	email := user.NormalizeEmail(in.Email)

	p, err := s.pending.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, apperror.NotFound("registration not found")
		}
		return Session{}, apperror.Internalf(err, "lookup pending registration")
	}

	if p.Expired(s.now()) {
		return Session{}, apperror.Unauthorized(apperror.CodeOTPExpired, "otp expired")
	}
	if !credential.CompareOTP(in.OTP, p.OTPHash) {
		return Session{}, apperror.Unauthorized(apperror.CodeInvalidOTP, "invalid otp")
	}

	u, err := s.users.Create(ctx, user.User{
		ID:           uuid.New(),
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
	})
	if err != nil {
		if errors.Is(err, user.ErrConflict) {
			return Session{}, apperror.Conflict("email already registered")
		}
		return Session{}, apperror.Internalf(err, "create user")
	}

	// Best effort: the account already exists.
	if err := s.pending.DeleteByEmail(ctx, email); err != nil {
		s.logger.Warn("delete pending registration", zap.String("email", email), zap.Error(err))
	}

	return s.session(u)
}

func (s *Service) ResendOTP(ctx context.Context, email string) (user.PendingRegistration, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return user.PendingRegistration{}, apperror.BadRequest("validation failed", map[string]string{"email": "is required"})
	}

	p, err := s.pending.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.PendingRegistration{}, apperror.Unauthorized(apperror.CodeRegistrationNotFound, "registration not found")
		}
		return user.PendingRegistration{}, apperror.Internalf(err, "lookup pending registration")
	}

	otp, err := s.generateOTP()
	if err != nil {
		return user.PendingRegistration{}, apperror.Internalf(err, "generate otp")
	}
	hash := credential.HashOTP(otp)
	expiresAt := s.now().Add(s.otpTTL)

	updated, err := s.pending.UpdateByEmail(ctx, email, user.PendingUpdate{OTPHash: &hash, OTPExpiresAt: &expiresAt})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.PendingRegistration{}, apperror.Unauthorized(apperror.CodeRegistrationNotFound, "registration not found")
		}
		return user.PendingRegistration{}, apperror.Internalf(err, "update pending registration")
	}

	if err := s.mailer.Send(ctx, notification.OTPEmail(p.Email, p.FullName, otp, s.otpTTL)); err != nil {
		return user.PendingRegistration{}, apperror.Internalf(err, "send otp email")
	}
	return sanitizePending(updated), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	if fields := s.valid.Struct(in); fields != nil {
		return Session{}, apperror.BadRequest("validation failed", fields)
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, errInvalidCredentials()
		}
		return Session{}, apperror.Internalf(err, "lookup user")
	}
	if !s.hasher.Verify(in.Password, u.PasswordHash) {
		return Session{}, errInvalidCredentials()
	}

	return s.session(u)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return Session{}, apperror.Unauthorized(apperror.CodeInvalidRefreshToken, "invalid refresh token")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, apperror.Unauthorized(apperror.CodeInvalidRefreshToken, "invalid refresh token")
		}
		return Session{}, apperror.Internalf(err, "lookup user")
	}

	return s.session(u)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = user.NormalizeEmail(email)
	if email == "" {
		return apperror.BadRequest("validation failed", map[string]string{"email": "is required"})
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return apperror.Unauthorized(apperror.CodeUserNotFound, "user not found")
		}
		return apperror.Internalf(err, "lookup user")
	}

	token, err := s.tokens.IssueResetToken(u.Email)
	if err != nil {
		return apperror.Internalf(err, "issue reset token")
	}
	expiresAt := s.now().Add(s.resetTTL)

	if err := s.storeResetToken(ctx, u.Email, token, expiresAt); err != nil {
		return apperror.Internalf(err, "store reset token")
	}

	msg := notification.ResetPasswordEmail(u.Email, u.FullName, s.frontendURL, token, s.resetTTL)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return apperror.Internalf(err, "send reset email")
	}
	return nil
}

// storeResetToken keeps one row per email. A concurrent insert that wins the
// unique index is overwritten.
func (s *Service) storeResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	_, err := s.resets.UpdateByEmail(ctx, email, user.ResetTokenUpdate{Token: &token, ExpiresAt: &expiresAt})
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	_, err = s.resets.Create(ctx, user.ResetToken{ID: uuid.New(), Email: email, Token: token, ExpiresAt: expiresAt})
	if errors.Is(err, user.ErrConflict) {
		_, err = s.resets.UpdateByEmail(ctx, email, user.ResetTokenUpdate{Token: &token, ExpiresAt: &expiresAt})
	}
	return err
}

func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if fields := s.valid.Struct(in); fields != nil {
		return apperror.BadRequest("validation failed", fields)
	}

	email, err := s.tokens.VerifyResetToken(in.Token)
	if err != nil {
		return errInvalidResetToken()
	}

	stored, err := s.resets.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errInvalidResetToken()
		}
		return apperror.Internalf(err, "lookup reset token")
	}
	if stored.Token != in.Token || !s.now().Before(stored.ExpiresAt) {
		return errInvalidResetToken()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return apperror.Internalf(err, "hash password")
	}

	if _, err := s.users.UpdateByEmail(ctx, email, user.UserUpdate{PasswordHash: &hash}); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return apperror.Unauthorized(apperror.CodeUserNotFound, "user not found")
		}
		return apperror.Internalf(err, "update password")
	}

	s.logger.Info("password reset", zap.String("email", email))
	return nil
}

// Authenticate resolves an access token to the current account.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (user.User, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		msg := "invalid access token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "access token expired"
		}
		return user.User{}, apperror.Unauthorized(apperror.CodeInvalidAccessToken, msg)
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, apperror.Unauthorized(apperror.CodeInvalidAccessToken, "invalid access token")
		}
		return user.User{}, apperror.Internalf(err, "lookup user")
	}
	return sanitizeUser(u), nil
}

func (s *Service) session(u user.User) (Session, error) {
	pair, err := s.tokens.IssueTokenPair(u.ID, u.Email)
	if err != nil {
		return Session{}, apperror.Internalf(err, "issue tokens")
	}
	return Session{User: sanitizeUser(u), Tokens: pair}, nil
}

func errEmailNotVerified() error {
	return apperror.Unauthorized(apperror.CodeEmailNotVerified, "email registered but not verified")
}

func errInvalidCredentials() error {
	return apperror.Unauthorized(apperror.CodeInvalidCredentials, "invalid email or password")
}

func errInvalidResetToken() error {
	return apperror.Unauthorized(apperror.CodeInvalidResetToken, "invalid or expired reset token")
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func sanitizePending(p user.PendingRegistration) user.PendingRegistration {
	p.PasswordHash = ""
	p.OTPHash = ""
	return p
}
