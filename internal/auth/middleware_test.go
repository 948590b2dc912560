package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/brubakerjm/etams/internal/domain"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

// stubEmployeeRepo serves a fixed set of employees keyed by username.
type stubEmployeeRepo struct {
	byUsername map[string]*domain.Employee
}

func (s *stubEmployeeRepo) GetByUsername(_ context.Context, username string) (*domain.Employee, error) {
	if employee, ok := s.byUsername[username]; ok {
		copied := *employee
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubEmployeeRepo) Create(context.Context, *domain.Employee) error  { return nil }
func (s *stubEmployeeRepo) Update(context.Context, *domain.Employee) error  { return nil }
func (s *stubEmployeeRepo) UpdatePasswordHash(context.Context, int, string) error {
	return nil
}
func (s *stubEmployeeRepo) Delete(context.Context, int) error { return nil }
func (s *stubEmployeeRepo) GetByID(context.Context, int) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubEmployeeRepo) GetByEmail(context.Context, string) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubEmployeeRepo) List(context.Context) ([]domain.Employee, error) { return nil, nil }
func (s *stubEmployeeRepo) Exists(context.Context, int) (bool, error)       { return false, nil }

func newTestApp(t *testing.T, tm *TokenManager, repo *stubEmployeeRepo) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
		},
	})
	middleware := NewAuthMiddleware(tm, repo)
	app.Use(middleware.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(principal.Employee.Username)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	repo := &stubEmployeeRepo{byUsername: map[string]*domain.Employee{
		"alice": {ID: 1, Username: "alice", Admin: false},
	}}
	app := newTestApp(t, tm, repo)

	validToken, _, err := tm.GenerateToken(1, "alice", false)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	deletedUserToken, _, err := tm.GenerateToken(99, "ghost", false)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no header passes through anonymously",
			header:     "",
			wantStatus: 200,
			wantBody:   "anonymous",
		},
		{
			name:       "non-bearer scheme passes through anonymously",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: 200,
			wantBody:   "anonymous",
		},
		{
			name:       "lowercase bearer prefix is not recognized",
			header:     "bearer " + validToken,
			wantStatus: 200,
			wantBody:   "anonymous",
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			wantStatus: 400,
			wantBody:   "Token is missing",
		},
		{
			name:       "bare scheme",
			header:     "Bearer",
			wantStatus: 400,
			wantBody:   "Token is missing",
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.token",
			wantStatus: 401,
			wantBody:   "Invalid token",
		},
		{
			name:       "expired token",
			header:     "Bearer " + signedToken(t, testSecret, -time.Minute),
			wantStatus: 401,
			wantBody:   "Token has expired",
		},
		{
			name:       "tampered token",
			header:     "Bearer " + signedToken(t, "other-secret", time.Minute),
			wantStatus: 401,
			wantBody:   "Invalid token",
		},
		{
			name:       "valid token resolves principal",
			header:     "Bearer " + validToken,
			wantStatus: 200,
			wantBody:   "alice",
		},
		{
			name:       "valid token for deleted employee is anonymous",
			header:     "Bearer " + deletedUserToken,
			wantStatus: 200,
			wantBody:   "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestGuards(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	repo := &stubEmployeeRepo{byUsername: map[string]*domain.Employee{
		"alice": {ID: 1, Username: "alice", Admin: false},
		"root":  {ID: 2, Username: "root", Admin: true},
	}}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
		},
	})
	middleware := NewAuthMiddleware(tm, repo)
	app.Use(middleware.Handle)
	app.Get("/admin-only", RequireAdmin(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/any-role", RequireAuthenticated(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	aliceToken, _, err := tm.GenerateToken(1, "alice", false)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	rootToken, _, err := tm.GenerateToken(2, "root", true)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "anonymous rejected on admin route",
			path:       "/admin-only",
			wantStatus: 401,
			wantBody:   "Unauthorized: You need to log in.",
		},
		{
			name:       "standard identity rejected on admin route",
			path:       "/admin-only",
			token:      aliceToken,
			wantStatus: 403,
			wantBody:   "Forbidden: You do not have permission to access this resource.",
		},
		{
			name:       "admin identity allowed on admin route",
			path:       "/admin-only",
			token:      rootToken,
			wantStatus: 200,
			wantBody:   "ok",
		},
		{
			name:       "anonymous rejected on authenticated route",
			path:       "/any-role",
			wantStatus: 401,
			wantBody:   "Unauthorized: You need to log in.",
		},
		{
			name:       "standard identity allowed on authenticated route",
			path:       "/any-role",
			token:      aliceToken,
			wantStatus: 200,
			wantBody:   "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

// Role changes after issuance must apply, since the employee is re-read on
// every request.
func TestMiddlewareRefreshesRoleFromStore(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	repo := &stubEmployeeRepo{byUsername: map[string]*domain.Employee{
		"alice": {ID: 1, Username: "alice", Admin: true},
	}}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
		},
	})
	middleware := NewAuthMiddleware(tm, repo)
	app.Use(middleware.Handle)
	app.Get("/admin-only", RequireAdmin(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	// Token claims admin=true, but the store has since been downgraded.
	token, _, err := tm.GenerateToken(1, "alice", true)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	repo.byUsername["alice"].Admin = false

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 403 {
		t.Fatalf("status = %d, want 403 after role downgrade", resp.StatusCode)
	}
}
