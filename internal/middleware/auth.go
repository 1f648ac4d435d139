package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/auth"
	"github.com/playvault/playvault/internal/types"
)

// Locals keys populated by Authenticate.
const (
	LocalsUserID = "userID"
	LocalsRole   = "userRole"
)

// Authenticate validates the Authorization bearer token and attaches the
// decoded identity claim to the request context.
func Authenticate(tokens *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return types.NewApiError(fiber.StatusUnauthorized, "access denied, no token provided", "auth.token.missing")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return types.NewApiError(fiber.StatusUnauthorized, "invalid authorization header", "auth.token.malformed")
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			if err == auth.ErrTokenExpired {
				return types.NewApiError(fiber.StatusUnauthorized, "token expired", "auth.token.expired")
			}
			return types.NewApiError(fiber.StatusUnauthorized, "invalid token", "auth.token.invalid")
		}

		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsRole, claims.Role)

		return c.Next()
	}
}

// RequireRole rejects the request unless the attached identity carries
// exactly the required role. No role hierarchy: admin does not satisfy
// a "user" requirement.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, _ := c.Locals(LocalsRole).(string)
		if current != role {
			return types.NewApiError(fiber.StatusForbidden, "access denied: insufficient permissions", "auth.role")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id attached by Authenticate.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}

// Role returns the authenticated role attached by Authenticate.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalsRole).(string)
	return role
}
