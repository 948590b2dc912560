package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brubakerjm/etams/internal/api/dto"
	"github.com/brubakerjm/etams/internal/service"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request. Username and password are required.", nil)
	}

	result, err := h.auth.Login(c.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.IP(),
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:      result.Token,
		Username:   result.Username,
		Admin:      result.Admin,
		EmployeeID: result.EmployeeID,
	})
}
