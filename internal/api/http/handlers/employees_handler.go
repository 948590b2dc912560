package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brubakerjm/etams/internal/api/dto"
	"github.com/brubakerjm/etams/internal/service"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

// EmployeesHandler manages employee administration endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, dto.FromEmployee(&employees[i].Employee, employees[i].TaskCount))
	}
	return c.JSON(items)
}

// Create POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee, err := h.service.Create(c.Context(), req.ToEmployeeInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromEmployee(employee, 0))
}

// Update PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", nil)
	}
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee, err := h.service.Update(c.Context(), id, req.ToEmployeeInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromEmployee(employee, 0))
}

// UpdatePassword PUT /api/employees/:id/password.
func (h *EmployeesHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", nil)
	}
	var req dto.PasswordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.UpdatePassword(c.Context(), id, req.Password); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete DELETE /api/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", nil)
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
