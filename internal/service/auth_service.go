package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brubakerjm/etams/internal/auth"
	"github.com/brubakerjm/etams/internal/config"
	"github.com/brubakerjm/etams/internal/repository"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

// lookupTimeout bounds the credential read so a slow store cannot hold the
// login flow past it.
const lookupTimeout = 5 * time.Second

// LoginInput carries credentials presented by the caller.
type LoginInput struct {
	Username string
	Password string
	ClientIP string
}

// LoginResult is returned on successful authentication. The token is
// self-contained; no session state is kept server-side.
type LoginResult struct {
	Token      string
	Username   string
	Admin      bool
	EmployeeID int
	ExpiresAt  time.Time
}

// AuthService coordinates credential verification and token issuance.
type AuthService struct {
	employees repository.EmployeeRepository
	tokenMgr  *auth.TokenManager
	limiter   *auth.LoginLimiter
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, employees repository.EmployeeRepository, limiter *auth.LoginLimiter) *AuthService {
	return &AuthService{
		employees: employees,
		tokenMgr:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		limiter:   limiter,
	}
}

// Login verifies credentials and issues a bearer token. Input validation
// happens before any store access; the error type decides the transport
// status at the boundary.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("Invalid request. Username and password are required.", nil)
	}

	if err := s.limiter.Allow(ctx, input.Username, input.ClientIP); err != nil {
		if errors.Is(err, auth.ErrLoginRateLimited) {
			return nil, apperrors.NewTooManyRequests("Too many login attempts. Please try again later.")
		}
		return nil, apperrors.NewInternalError(err)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	employee, err := s.employees.GetByUsername(lookupCtx, input.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found. Please check your username.", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(employee.PasswordHash, input.Password); err != nil {
		return nil, apperrors.NewUnauthorized("Incorrect username or password.")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(employee.ID, employee.Username, employee.Admin)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{
		Token:      token,
		Username:   employee.Username,
		Admin:      employee.Admin,
		EmployeeID: employee.ID,
		ExpiresAt:  expiresAt,
	}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
