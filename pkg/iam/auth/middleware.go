package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated principal attached to a request.
type AuthContext struct {
	UserID   kernel.UserID
	Email    kernel.Email
	Username kernel.Username
	Scopes   []string
}

func (a *AuthContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Middleware authenticates requests with bearer tokens.
type Middleware struct {
	tokenService *TokenService
}

func NewMiddleware(tokenService *TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// Authenticate validates the Authorization header and stores the principal in
// the request context.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(authContextKey, &AuthContext{
			UserID:   claims.UserID,
			Email:    claims.Email,
			Username: claims.Username,
			Scopes:   claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope rejects authenticated requests whose token lacks the scope.
func (m *Middleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}
		if !authCtx.HasScope(scope) {
			return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}

// GetAuthContext extracts the authenticated principal from the request.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}
