package domain

import "time"

// TaskStatus represents the processing state of a complaint.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusResolved   TaskStatus = "resolved"
)

// DefaultTaskStatus is applied when a task is created without a status.
const DefaultTaskStatus = TaskStatusPending

// TaskStatuses lists every recognized status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusResolved}
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusResolved:
		return true
	default:
		return false
	}
}

// Task is a complaint record.
type Task struct {
	ID              int64
	ComplaintNumber string
	Remarks         *string
	Status          TaskStatus
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TaskDraft holds the caller-supplied fields of a task that is about to be inserted.
type TaskDraft struct {
	ComplaintNumber string
	Remarks         *string
	Status          TaskStatus
	CreatedBy       string
}

// OptionalString is a patch slot for a nullable text column.
// Set reports whether the caller touched the field; a nil Value with Set clears the column.
type OptionalString struct {
	Set   bool
	Value *string
}

// TaskPatch is a partial update. Nil pointers and unset slots are left untouched.
type TaskPatch struct {
	ComplaintNumber *string
	Remarks         OptionalString
	Status          *TaskStatus
	CreatedBy       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.ComplaintNumber == nil &&
		!p.Remarks.Set &&
		p.Status == nil &&
		p.CreatedBy == nil
}
