package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/provider-directory/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated admin caller.
type Principal struct {
	Role string
}

// Middleware validates bearer tokens and loads the admin principal.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate parses an Authorization header when one is present. Requests
// without a header continue as anonymous; the public listing paths use the
// principal's presence to decide whether moderation filters pass through.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &Principal{Role: claims.Role})
	return c.Next()
}

// RequireAdmin rejects requests without an authenticated admin principal.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return apperrors.NewUnauthorized("admin token required")
		}
		return c.Next()
	}
}

// IsAdmin reports whether the request carries an admin principal.
func IsAdmin(c *fiber.Ctx) bool {
	val := c.Locals(principalKey)
	if val == nil {
		return false
	}
	principal, ok := val.(*Principal)
	return ok && principal != nil
}
