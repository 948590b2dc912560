package domain

import "time"

// Role is the authorization level derived from an employee record.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStandard Role = "STANDARD"
)

// Employee is the domain model for system users and task assignees.
// RoleLabel is free text kept for display; authorization decisions use
// the Admin flag only.
type Employee struct {
	ID           int
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	RoleLabel    string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role maps the admin flag to the authorization role.
func (e *Employee) Role() Role {
	if e.Admin {
		return RoleAdmin
	}
	return RoleStandard
}

// FullName returns the display name used in task listings.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
