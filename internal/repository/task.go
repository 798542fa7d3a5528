package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/taskdesk/internal/domain"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "complaint_number", "remarks", "status", "created_by", "created_at", "updated_at",
}

// returningTask is the RETURNING clause that yields a full task row.
var returningTask = "RETURNING " + strings.Join(taskColumns, ", ")

// bumpUpdatedAt moves updated_at forward even when two writes land in the same microsecond.
var bumpUpdatedAt = sq.Expr("GREATEST(clock_timestamp(), updated_at + INTERVAL '1 microsecond')")

// TaskRepository handles database operations for tasks.
//
// Absence is not an error here: lookups and mutations of a missing row return
// a nil task (or false) with a nil error. Every other failure wraps
// domain.ErrPersistence.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// persistenceError tags err as an infrastructure failure of op.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

// scanTask scans a single row into a Task struct.
// A missing row yields (nil, nil).
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.ComplaintNumber,
		&task.Remarks,
		&task.Status,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceError("scan task", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
// The result is never nil so callers can tell "no rows" from a failure.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate rows", err)
	}
	return tasks, nil
}

// Insert persists a new task and returns it with ID, CreatedAt and UpdatedAt populated.
// Both timestamps come from the same NOW() so a fresh row has CreatedAt == UpdatedAt.
func (r *TaskRepository) Insert(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	query, args, err := psql.
		Insert("tasks").
		Columns("complaint_number", "remarks", "status", "created_by").
		Values(draft.ComplaintNumber, draft.Remarks, draft.Status, draft.CreatedBy).
		Suffix(returningTask).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Insert query for task: %w", err)
	}

	task, err := scanTask(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, persistenceError("insert task", errors.New("no row returned"))
	}
	return task, nil
}

// GetByID retrieves a task by ID. Returns (nil, nil) when no such task exists.
func (r *TaskRepository) GetByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task %d: %w", taskID, err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// Update applies the supplied fields of patch and refreshes updated_at.
// Returns (nil, nil) when no task with taskID exists.
func (r *TaskRepository) Update(ctx context.Context, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	qb := psql.Update("tasks")

	if patch.ComplaintNumber != nil {
		qb = qb.Set("complaint_number", *patch.ComplaintNumber)
	}
	if patch.Remarks.Set {
		qb = qb.Set("remarks", patch.Remarks.Value)
	}
	if patch.Status != nil {
		qb = qb.Set("status", *patch.Status)
	}
	if patch.CreatedBy != nil {
		qb = qb.Set("created_by", *patch.CreatedBy)
	}

	query, args, err := qb.
		Set("updated_at", bumpUpdatedAt).
		Where(sq.Eq{"id": taskID}).
		Suffix(returningTask).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for task %d: %w", taskID, err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes a task. Returns false when there was no row to remove.
func (r *TaskRepository) Delete(ctx context.Context, taskID int64) (bool, error) {
	query, args, err := psql.
		Delete("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build Delete query for task %d: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, persistenceError("delete task", err)
	}

	return tag.RowsAffected() > 0, nil
}
