package dto

import (
	"time"

	"github.com/brubakerjm/etams/internal/domain"
	"github.com/brubakerjm/etams/internal/service"
)

// EmployeeRequest payload for creating or updating an employee. Password is
// write-only: accepted here, never echoed back.
type EmployeeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Admin     bool   `json:"admin"`
	Password  string `json:"password,omitempty"`
}

// PasswordUpdateRequest payload for PUT /api/employees/:id/password.
type PasswordUpdateRequest struct {
	Password string `json:"password"`
}

// EmployeeResponse is the outward representation of an employee. The password
// hash is deliberately absent.
type EmployeeResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Admin     bool   `json:"admin"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	TaskCount int    `json:"taskCount"`
}

// ToEmployeeInput maps the request to the service input.
func (r EmployeeRequest) ToEmployeeInput() service.EmployeeInput {
	return service.EmployeeInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Username:  r.Username,
		RoleLabel: r.Role,
		Admin:     r.Admin,
		Password:  r.Password,
	}
}

// FromEmployee maps a domain employee to its response form.
func FromEmployee(employee *domain.Employee, taskCount int) EmployeeResponse {
	return EmployeeResponse{
		ID:        employee.ID,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Email:     employee.Email,
		Username:  employee.Username,
		Role:      employee.RoleLabel,
		Admin:     employee.Admin,
		CreatedAt: employee.CreatedAt.Format(time.RFC3339),
		UpdatedAt: employee.UpdatedAt.Format(time.RFC3339),
		TaskCount: taskCount,
	}
}
