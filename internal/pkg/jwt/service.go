package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeReset   = "reset"
)

const (
	DefaultAccessExpiresIn  = 15 * time.Minute
	DefaultRefreshExpiresIn = 7 * 24 * time.Hour
	DefaultResetExpiresIn   = 10 * time.Minute
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service interface {
	IssueTokenPair(userID uuid.UUID, email string) (TokenPair, error)
	VerifyAccessToken(token string) (Claims, error)
	VerifyRefreshToken(token string) (Claims, error)
	IssueResetToken(email string) (string, error)
	VerifyResetToken(token string) (string, error)
}

type Options struct {
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	ResetExpiresIn   time.Duration
}

// HMACService signs every token kind with one HS256 secret. Kinds are kept
// apart by the token_type claim.
type HMACService struct {
	secret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration
	resetExpiresIn   time.Duration

	now func() time.Time
}

func NewHMACService(secret string, opts Options) *HMACService {
	s := &HMACService{
		secret:           []byte(secret),
		accessExpiresIn:  opts.AccessExpiresIn,
		refreshExpiresIn: opts.RefreshExpiresIn,
		resetExpiresIn:   opts.ResetExpiresIn,
		now:              time.Now,
	}
	if s.accessExpiresIn <= 0 {
		s.accessExpiresIn = DefaultAccessExpiresIn
	}
	if s.refreshExpiresIn <= 0 {
		s.refreshExpiresIn = DefaultRefreshExpiresIn
	}
	if s.resetExpiresIn <= 0 {
		s.resetExpiresIn = DefaultResetExpiresIn
	}
	return s
}

// WithClock replaces the time source. Intended for tests.
func (s *HMACService) WithClock(now func() time.Time) *HMACService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *HMACService) IssueTokenPair(userID uuid.UUID, email string) (TokenPair, error) {
	access, err := s.generate(TokenTypeAccess, userID, email, s.accessExpiresIn)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.generate(TokenTypeRefresh, userID, email, s.refreshExpiresIn)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *HMACService) VerifyAccessToken(token string) (Claims, error) {
	return s.verify(token, TokenTypeAccess)
}

func (s *HMACService) VerifyRefreshToken(token string) (Claims, error) {
	return s.verify(token, TokenTypeRefresh)
}

func (s *HMACService) IssueResetToken(email string) (string, error) {
	return s.generate(TokenTypeReset, uuid.Nil, email, s.resetExpiresIn)
}

func (s *HMACService) VerifyResetToken(token string) (string, error) {
	c, err := s.verify(token, TokenTypeReset)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(c.Email) == "" {
		return "", ErrTokenInvalid
	}
	return c.Email, nil
}

func (s *HMACService) generate(tokenType string, userID uuid.UUID, email string, expIn time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expIn)),
		},
	}
	if userID != uuid.Nil {
		c.Subject = userID.String()
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) verify(token, wantType string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if c.TokenType != wantType {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}
