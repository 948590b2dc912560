package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusUnassigned TaskStatus = "UNASSIGNED"
)

// ValidTaskStatus reports whether s is a known status value.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusUnassigned:
		return true
	}
	return false
}

// Task is the aggregate for units of work assigned to employees.
// AssigneeName is resolved from the employee join on reads; it is not a
// stored column.
type Task struct {
	ID                 int
	Title              string
	Description        string
	Status             TaskStatus
	Deadline           *time.Time
	AssignedEmployeeID *int
	AssigneeName       *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
