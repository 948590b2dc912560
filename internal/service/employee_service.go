package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/brubakerjm/etams/internal/auth"
	"github.com/brubakerjm/etams/internal/domain"
	"github.com/brubakerjm/etams/internal/repository"
	apperrors "github.com/brubakerjm/etams/pkg/util"
)

// EmployeeInput carries employee fields for create and update operations.
// Password is optional on update; when present it is re-hashed.
type EmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	RoleLabel string
	Admin     bool
	Password  string
}

// EmployeeWithTaskCount pairs an employee with the number of tasks assigned
// to them, for the management listing.
type EmployeeWithTaskCount struct {
	Employee  domain.Employee
	TaskCount int
}

// EmployeeService contains business logic for employee management.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	tasks      repository.TaskRepository
	bcryptCost int
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, tasks repository.TaskRepository, bcryptCost int) *EmployeeService {
	return &EmployeeService{employees: employees, tasks: tasks, bcryptCost: bcryptCost}
}

// List returns all employees with their assigned task counts.
func (s *EmployeeService) List(ctx context.Context) ([]EmployeeWithTaskCount, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	counts, err := s.tasks.CountByAssignee(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	out := make([]EmployeeWithTaskCount, 0, len(employees))
	for _, employee := range employees {
		out = append(out, EmployeeWithTaskCount{Employee: employee, TaskCount: counts[employee.ID]})
	}
	return out, nil
}

// Create validates input, hashes the password, and stores a new employee.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	if err := validateEmployeeInput(input); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, apperrors.NewValidationError("password is required", nil)
	}
	if err := s.checkUnique(ctx, input.Username, input.Email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	employee := &domain.Employee{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		RoleLabel:    input.RoleLabel,
		Admin:        input.Admin,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// Update modifies an existing employee. The password hash is replaced only
// when a new password is provided.
func (s *EmployeeService) Update(ctx context.Context, id int, input EmployeeInput) (*domain.Employee, error) {
	if err := validateEmployeeInput(input); err != nil {
		return nil, err
	}

	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Employee not found", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.checkUnique(ctx, input.Username, input.Email, id); err != nil {
		return nil, err
	}

	employee.FirstName = input.FirstName
	employee.LastName = input.LastName
	employee.Email = input.Email
	employee.Username = input.Username
	employee.RoleLabel = input.RoleLabel
	employee.Admin = input.Admin

	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		employee.PasswordHash = hash
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// UpdatePassword replaces an employee's password hash.
func (s *EmployeeService) UpdatePassword(ctx context.Context, id int, password string) error {
	if strings.TrimSpace(password) == "" {
		return apperrors.NewValidationError("password is required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	if err := s.employees.UpdatePasswordHash(ctx, id, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Employee not found", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Delete removes an employee. Tasks assigned to them fall back to
// unassigned via the schema's ON DELETE SET NULL.
func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Employee not found", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *EmployeeService) checkUnique(ctx context.Context, username, email string, selfID int) error {
	if existing, err := s.employees.GetByUsername(ctx, username); err == nil {
		if existing.ID != selfID {
			return apperrors.NewConflict("username already in use", nil)
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}

	if existing, err := s.employees.GetByEmail(ctx, email); err == nil {
		if existing.ID != selfID {
			return apperrors.NewConflict("email already in use", nil)
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}
	return nil
}

func validateEmployeeInput(input EmployeeInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.FirstName) == "" {
		details["firstName"] = "must not be blank"
	}
	if strings.TrimSpace(input.LastName) == "" {
		details["lastName"] = "must not be blank"
	}
	if strings.TrimSpace(input.Username) == "" {
		details["username"] = "must not be blank"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "must not be blank"
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		details["email"] = "must be valid"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee payload", details)
	}
	return nil
}
