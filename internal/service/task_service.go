package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/taskdesk/internal/domain"
	"github.com/mtlprog/taskdesk/internal/repository"
)

// TaskStore is the persistence contract the service relies on.
// Missing rows are reported as a nil task or false, never as an error.
type TaskStore interface {
	Insert(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
	GetByID(ctx context.Context, taskID int64) (*domain.Task, error)
	List(ctx context.Context, filters repository.TaskListFilters) ([]*domain.Task, error)
	Count(ctx context.Context, filters repository.TaskListFilters) (int, error)
	Update(ctx context.Context, taskID int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, taskID int64) (bool, error)
}

// CreateTaskParams holds the caller input for a new task.
type CreateTaskParams struct {
	ComplaintNumber string
	Remarks         *string
	Status          *domain.TaskStatus // nil means the default status
	CreatedBy       string
}

// ListTasksParams holds filters and the pagination window for listing.
type ListTasksParams struct {
	Status    *domain.TaskStatus
	CreatedBy *string
	Skip      int
	Limit     int
}

// TaskPage is one window of a list query.
type TaskPage struct {
	Tasks []*domain.Task
	Total int
	Skip  int
	Limit int
}

// TaskService owns the task lifecycle rules: validation, defaulting and error translation.
type TaskService struct {
	store TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create validates params, applies defaults and persists a new task.
func (s *TaskService) Create(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	if err := ValidateCreate(params); err != nil {
		return nil, err
	}

	status := domain.DefaultTaskStatus
	if params.Status != nil {
		status = *params.Status
	}

	task, err := s.store.Insert(ctx, domain.TaskDraft{
		ComplaintNumber: params.ComplaintNumber,
		Remarks:         params.Remarks,
		Status:          status,
		CreatedBy:       params.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"complaint_number", task.ComplaintNumber,
		"status", task.Status,
		"created_by", task.CreatedBy,
	)

	return task, nil
}

// Get returns the task with taskID or domain.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, taskID int64) (*domain.Task, error) {
	if taskID <= 0 {
		return nil, notFound(taskID)
	}

	task, err := s.store.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", taskID, err)
	}
	if task == nil {
		return nil, notFound(taskID)
	}
	return task, nil
}

// List returns the tasks matching params, ordered by id.
// Filtering and pagination happen in the store; the result is not re-filtered here.
func (s *TaskService) List(ctx context.Context, params ListTasksParams) (*TaskPage, error) {
	if err := ValidateList(params); err != nil {
		return nil, err
	}

	filters := repository.TaskListFilters{
		Status:    params.Status,
		CreatedBy: params.CreatedBy,
		Limit:     params.Limit,
		Offset:    params.Skip,
	}

	tasks, err := s.store.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	total, err := s.store.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	return &TaskPage{
		Tasks: tasks,
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	}, nil
}

// Update applies patch to an existing task.
// Status changes are not restricted to any transition order.
func (s *TaskService) Update(ctx context.Context, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	if _, err := s.Get(ctx, taskID); err != nil {
		return nil, err
	}

	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	task, err := s.store.Update(ctx, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", taskID, err)
	}
	if task == nil {
		// Deleted between the existence check and the write.
		return nil, notFound(taskID)
	}

	slog.Info("task updated",
		"task_id", task.ID,
		"status", task.Status,
	)

	return task, nil
}

// Delete hard-deletes the task with taskID.
func (s *TaskService) Delete(ctx context.Context, taskID int64) error {
	if taskID <= 0 {
		return notFound(taskID)
	}

	deleted, err := s.store.Delete(ctx, taskID)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	if !deleted {
		return notFound(taskID)
	}

	slog.Info("task deleted", "task_id", taskID)

	return nil
}

func notFound(taskID int64) error {
	return fmt.Errorf("%w: id %d", domain.ErrTaskNotFound, taskID)
}
