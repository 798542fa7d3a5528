package dto

import (
	"time"

	"github.com/mtlprog/taskdesk/internal/domain"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID              int64     `json:"id"`
	ComplaintNumber string    `json:"complaint_number"`
	Remarks         *string   `json:"remarks"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// DeleteTaskResponse confirms a deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ToTaskResponse converts domain.Task to TaskResponse.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:              task.ID,
		ComplaintNumber: task.ComplaintNumber,
		Remarks:         task.Remarks,
		Status:          string(task.Status),
		CreatedBy:       task.CreatedBy,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

// ToTasksListResponse converts a page of tasks. Tasks is never null in JSON.
func ToTasksListResponse(tasks []*domain.Task, total, skip, limit int) TasksListResponse {
	items := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskResponse(task)
	}
	return TasksListResponse{
		Tasks: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}
