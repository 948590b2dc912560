package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/brubakerjm/etams/internal/domain"
	"github.com/brubakerjm/etams/internal/repository"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

const principalKey = "auth_principal"

const bearerPrefix = "Bearer "

// Principal represents the authenticated caller for the remainder of a
// request. The employee is re-read from the store at validation time, so role
// changes apply to tokens issued before the change.
type Principal struct {
	Employee *domain.Employee
}

// Admin reports whether the principal carries the admin role.
func (p *Principal) Admin() bool {
	return p != nil && p.Employee != nil && p.Employee.Admin
}

// AuthMiddleware validates bearer tokens and establishes the request principal.
type AuthMiddleware struct {
	tokens    *TokenManager
	employees repository.EmployeeRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, employees repository.EmployeeRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, employees: employees}
}

// Handle runs on every request. Requests without a bearer header pass through
// anonymously; route guards decide whether that is acceptable. Requests with a
// bearer header are rejected here when the token is missing, expired, or
// invalid, before any handler runs.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Next()
	}
	// A bare scheme with no token is a client error, not an anonymous
	// request. Transport layers trim trailing whitespace, so "Bearer "
	// arrives here as "Bearer".
	if strings.TrimSpace(authHeader) == "Bearer" {
		return apperrors.NewValidationError("Token is missing", nil)
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return c.Next()
	}

	tokenStr := strings.TrimSpace(authHeader[len(bearerPrefix):])

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewUnauthorized("Token has expired")
		}
		return apperrors.NewUnauthorized("Invalid token")
	}

	// A principal set earlier in the chain wins; never overwrite it.
	if _, ok := PrincipalFromContext(c); ok {
		return c.Next()
	}

	employee, err := m.employees.GetByUsername(c.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Subject vanished since issuance: continue anonymously and
			// let the guards fail closed.
			return c.Next()
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Employee: employee})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
