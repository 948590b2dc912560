package dto

import (
	"fmt"
	"time"

	"github.com/brubakerjm/etams/internal/domain"
	"github.com/brubakerjm/etams/internal/service"
)

const deadlineLayout = "2006-01-02"

// TaskRequest payload for creating or updating a task. Deadline is a
// date-only string (YYYY-MM-DD).
type TaskRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Status             string `json:"status"`
	Deadline           string `json:"deadline,omitempty"`
	AssignedEmployeeID *int   `json:"assignedEmployeeId"`
}

// TaskResponse is the outward representation of a task.
type TaskResponse struct {
	ID                   int     `json:"id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Status               string  `json:"status"`
	Deadline             *string `json:"deadline"`
	AssignedEmployeeID   *int    `json:"assignedEmployeeId"`
	AssignedEmployeeName *string `json:"assignedEmployeeName"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// ToTaskInput maps the request to the service input, parsing the deadline.
func (r TaskRequest) ToTaskInput() (service.TaskInput, error) {
	input := service.TaskInput{
		Title:              r.Title,
		Description:        r.Description,
		Status:             r.Status,
		AssignedEmployeeID: r.AssignedEmployeeID,
	}
	if r.Deadline != "" {
		parsed, err := time.Parse(deadlineLayout, r.Deadline)
		if err != nil {
			return service.TaskInput{}, fmt.Errorf("invalid deadline %q: expected YYYY-MM-DD", r.Deadline)
		}
		input.Deadline = &parsed
	}
	return input, nil
}

// FromTask maps a domain task to its response form.
func FromTask(task *domain.Task) TaskResponse {
	var deadline *string
	if task.Deadline != nil {
		formatted := task.Deadline.Format(deadlineLayout)
		deadline = &formatted
	}
	return TaskResponse{
		ID:                   task.ID,
		Title:                task.Title,
		Description:          task.Description,
		Status:               string(task.Status),
		Deadline:             deadline,
		AssignedEmployeeID:   task.AssignedEmployeeID,
		AssignedEmployeeName: task.AssigneeName,
		CreatedAt:            task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            task.UpdatedAt.Format(time.RFC3339),
	}
}

// FromTasks maps a slice of tasks.
func FromTasks(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, FromTask(&tasks[i]))
	}
	return out
}
