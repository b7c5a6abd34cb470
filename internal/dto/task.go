package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// CreateTaskRequest defines the data needed to create a task-board card.
type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	DueDate     *time.Time        `json:"dueDate"`
}

// UpdateTaskRequest defines the fields of a task that can change.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *domain.TaskStatus `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	DueDate     *time.Time         `json:"dueDate"`
}

// TaskResponse defines the data returned for a task.
type TaskResponse struct {
	TaskID      string            `json:"taskID"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      domain.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToTaskResponse converts a domain.Task to its response DTO.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.LastUpdatedAt,
	}
}

// ToTaskResponses converts a slice of tasks.
func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i := range tasks {
		res[i] = ToTaskResponse(&tasks[i])
	}
	return res
}
