package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/brubakerjm/etams/pkg/util"
)

const (
	msgUnauthorized = "Unauthorized: You need to log in."
	msgForbidden    = "Forbidden: You do not have permission to access this resource."
)

// RequireAuthenticated ensures the caller presented a valid identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized(msgUnauthorized)
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller is authenticated and carries the admin role.
// Missing identity yields 401, a non-admin identity 403.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(msgUnauthorized)
		}
		if !principal.Admin() {
			return apperrors.NewForbidden(msgForbidden)
		}
		return c.Next()
	}
}
