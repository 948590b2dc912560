package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brubakerjm/etams/internal/api/dto"
	"github.com/brubakerjm/etams/internal/auth"
	"github.com/brubakerjm/etams/internal/events"
	"github.com/brubakerjm/etams/internal/service"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

// TasksHandler manages task endpoints available to any authenticated employee.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// List GET /api/tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	tasks, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTasks(tasks))
}

// ListByEmployee GET /api/tasks/user/:employeeId.
func (h *TasksHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID, err := c.ParamsInt("employeeId")
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", nil)
	}

	tasks, err := h.service.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTasks(tasks))
}

// Create POST /api/tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := req.ToTaskInput()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	task, err := h.service.Create(c.Context(), actorFromContext(c), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTask(task))
}

// Update PUT /api/tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid task id", nil)
	}
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := req.ToTaskInput()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	task, err := h.service.Update(c.Context(), actorFromContext(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTask(task))
}

// Delete DELETE /api/tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid task id", nil)
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return events.Actor{}
	}
	id := principal.Employee.ID
	return events.Actor{EmployeeID: &id, Username: principal.Employee.Username}
}
