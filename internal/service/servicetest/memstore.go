// Package servicetest provides an in-memory service.TaskStore for tests that
// do not need PostgreSQL.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mtlprog/taskdesk/internal/domain"
	"github.com/mtlprog/taskdesk/internal/repository"
)

// MemoryStore mirrors the semantics of repository.TaskRepository over a map.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]domain.Task

	// Err, when set, is returned (wrapped as a persistence failure) by every call.
	Err error
	// BeforeUpdate runs inside Update before the row is looked up, without the lock held.
	BeforeUpdate func(taskID int64)
	// Now supplies timestamps. Defaults to time.Now.
	Now func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[int64]domain.Task),
		Now:   time.Now,
	}
}

func (m *MemoryStore) fail(op string) error {
	if m.Err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, m.Err)
}

// Insert stores a new task with the next id.
func (m *MemoryStore) Insert(_ context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	if err := m.fail("insert task"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	now := m.Now()
	task := domain.Task{
		ID:              m.nextID,
		ComplaintNumber: draft.ComplaintNumber,
		Remarks:         cloneString(draft.Remarks),
		Status:          draft.Status,
		CreatedBy:       draft.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.tasks[task.ID] = task
	return &task, nil
}

// GetByID returns a copy of the task or nil.
func (m *MemoryStore) GetByID(_ context.Context, taskID int64) (*domain.Task, error) {
	if err := m.fail("get task"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (m *MemoryStore) matching(filters repository.TaskListFilters) []domain.Task {
	var out []domain.Task
	for _, task := range m.tasks {
		if filters.Status != nil && task.Status != *filters.Status {
			continue
		}
		if filters.CreatedBy != nil && task.CreatedBy != *filters.CreatedBy {
			continue
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// List returns the matching window ordered by id.
func (m *MemoryStore) List(_ context.Context, filters repository.TaskListFilters) ([]*domain.Task, error) {
	if err := m.fail("query tasks"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.matching(filters)
	tasks := make([]*domain.Task, 0)
	for i := filters.Offset; i < len(all) && len(tasks) < filters.Limit; i++ {
		task := all[i]
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

// Count returns the number of matching tasks.
func (m *MemoryStore) Count(_ context.Context, filters repository.TaskListFilters) (int, error) {
	if err := m.fail("count tasks"); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.matching(filters)), nil
}

// Update applies patch and moves UpdatedAt strictly forward.
func (m *MemoryStore) Update(_ context.Context, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := m.fail("update task"); err != nil {
		return nil, err
	}
	if m.BeforeUpdate != nil {
		m.BeforeUpdate(taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return nil, nil
	}

	if patch.ComplaintNumber != nil {
		task.ComplaintNumber = *patch.ComplaintNumber
	}
	if patch.Remarks.Set {
		task.Remarks = cloneString(patch.Remarks.Value)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.CreatedBy != nil {
		task.CreatedBy = *patch.CreatedBy
	}

	now := m.Now()
	if !now.After(task.UpdatedAt) {
		now = task.UpdatedAt.Add(time.Microsecond)
	}
	task.UpdatedAt = now

	m.tasks[taskID] = task
	return &task, nil
}

// Delete removes the task and reports whether it existed.
func (m *MemoryStore) Delete(_ context.Context, taskID int64) (bool, error) {
	if err := m.fail("delete task"); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[taskID]; !ok {
		return false, nil
	}
	delete(m.tasks, taskID)
	return true, nil
}

// Len returns the number of stored tasks.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
