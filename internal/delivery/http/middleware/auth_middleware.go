package middleware

import (
	"context"
	"strings"

	"next-hire/internal/domain/user"
	"next-hire/internal/pkg/apperror"

	"github.com/gofiber/fiber/v3"
)

const CtxUserKey = "user"

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (user.User, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return NewAppError(fiber.StatusUnauthorized, "authorization header required", nil, nil).
				WithCode(apperror.CodeInvalidAccessToken)
		}
		token, ok := BearerToken(header)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "bearer token required", nil, nil).
				WithCode(apperror.CodeInvalidAccessToken)
		}

		u, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			return err
		}

		c.Locals(CtxUserKey, u)
		return c.Next()
	}
}

// RequireRoles must run after Middleware.
func RequireRoles(roles ...user.Role) fiber.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil).
				WithCode(apperror.CodeInvalidAccessToken)
		}
		if _, ok := allowed[u.Role]; !ok {
			return NewAppError(fiber.StatusForbidden, "insufficient permissions", nil, nil).
				WithCode(apperror.CodeForbidden)
		}
		return c.Next()
	}
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(CtxUserKey).(user.User)
	return u, ok
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
