package events

import (
	"time"

	"github.com/brubakerjm/etams/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated       EventType = "task_created"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventTaskAssigned      EventType = "task_assigned"
	EventTaskDeleted       EventType = "task_deleted"
)

// Actor encapsulates the employee that triggered an event.
type Actor struct {
	EmployeeID *int   `json:"employee_id,omitempty"`
	Username   string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TaskID    int         `json:"task_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	Title              string            `json:"title"`
	Status             domain.TaskStatus `json:"status"`
	AssignedEmployeeID *int              `json:"assigned_employee_id,omitempty"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	AssignedEmployeeID *int `json:"assigned_employee_id,omitempty"`
}
