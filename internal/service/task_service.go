package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/brubakerjm/etams/internal/domain"
	"github.com/brubakerjm/etams/internal/events"
	"github.com/brubakerjm/etams/internal/repository"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

// maxTitleLength matches the tasks.title column width.
const maxTitleLength = 100

// TaskInput carries task fields for create and update operations.
type TaskInput struct {
	Title              string
	Description        string
	Status             string
	Deadline           *time.Time
	AssignedEmployeeID *int
}

// TaskService contains business logic for task management.
type TaskService struct {
	tasks      repository.TaskRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// NewTaskService builds the service.
func NewTaskService(tasks repository.TaskRepository, employees repository.EmployeeRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{tasks: tasks, employees: employees, dispatcher: dispatcher}
}

// List returns all tasks with assignee display names.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// ListByEmployee returns the tasks assigned to one employee.
func (s *TaskService) ListByEmployee(ctx context.Context, employeeID int) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// Create validates and stores a new task. Assigning an employee to a task
// that would otherwise be UNASSIGNED moves it to PENDING.
func (s *TaskService) Create(ctx context.Context, actor events.Actor, input TaskInput) (*domain.Task, error) {
	status, err := s.resolveStatus(input)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, input.AssignedEmployeeID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Status:             status,
		Deadline:           input.Deadline,
		AssignedEmployeeID: input.AssignedEmployeeID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTaskCreated, task.ID, actor, events.TaskCreatedPayload{
		Title:              task.Title,
		Status:             task.Status,
		AssignedEmployeeID: task.AssignedEmployeeID,
	})
	if task.AssignedEmployeeID != nil {
		s.publish(ctx, events.EventTaskAssigned, task.ID, actor, events.TaskAssignedPayload{
			AssignedEmployeeID: task.AssignedEmployeeID,
		})
	}
	return task, nil
}

// Update replaces the mutable fields of an existing task. Clearing the
// assignee resets the status to UNASSIGNED.
func (s *TaskService) Update(ctx context.Context, actor events.Actor, id int, input TaskInput) (*domain.Task, error) {
	existing, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Task not found", nil)
		}
		return nil, apperrors.MapError(err)
	}

	status, err := s.resolveStatus(input)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, input.AssignedEmployeeID); err != nil {
		return nil, err
	}
	if input.AssignedEmployeeID == nil {
		status = domain.TaskStatusUnassigned
	}

	oldStatus := existing.Status
	oldAssignee := existing.AssignedEmployeeID

	existing.Title = strings.TrimSpace(input.Title)
	existing.Description = input.Description
	existing.Status = status
	existing.Deadline = input.Deadline
	existing.AssignedEmployeeID = input.AssignedEmployeeID

	if err := s.tasks.Update(ctx, existing); err != nil {
		return nil, apperrors.MapError(err)
	}

	if oldStatus != existing.Status {
		s.publish(ctx, events.EventTaskStatusChanged, existing.ID, actor, events.TaskStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: existing.Status,
		})
	}
	if !sameAssignee(oldAssignee, existing.AssignedEmployeeID) {
		s.publish(ctx, events.EventTaskAssigned, existing.ID, actor, events.TaskAssignedPayload{
			AssignedEmployeeID: existing.AssignedEmployeeID,
		})
	}
	return existing, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, actor events.Actor, id int) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Task not found", nil)
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTaskDeleted, id, actor, nil)
	return nil
}

func (s *TaskService) resolveStatus(input TaskInput) (domain.TaskStatus, error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", apperrors.NewValidationError("Task title is required", nil)
	}
	if len(strings.TrimSpace(input.Title)) > maxTitleLength {
		return "", apperrors.NewValidationError("Task title must be at most 100 characters", nil)
	}

	status := domain.TaskStatusUnassigned
	if input.Status != "" {
		status = domain.TaskStatus(strings.ToUpper(input.Status))
		if !domain.ValidTaskStatus(status) {
			return "", apperrors.NewValidationError("invalid task status", map[string]any{"status": input.Status})
		}
	}
	if input.AssignedEmployeeID != nil && status == domain.TaskStatusUnassigned {
		status = domain.TaskStatusPending
	}
	return status, nil
}

func (s *TaskService) checkAssignee(ctx context.Context, employeeID *int) error {
	if employeeID == nil {
		return nil
	}
	exists, err := s.employees.Exists(ctx, *employeeID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !exists {
		return apperrors.NewNotFound("Employee not found", nil)
	}
	return nil
}

func (s *TaskService) publish(ctx context.Context, eventType events.EventType, taskID int, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TaskID:    taskID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func sameAssignee(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
