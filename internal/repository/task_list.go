package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mtlprog/taskdesk/internal/domain"
)

// TaskListFilters holds all supported filters for task listing.
type TaskListFilters struct {
	Status    *domain.TaskStatus // Optional: filter by status
	CreatedBy *string            // Optional: filter by author
	Limit     int                // Required: page size
	Offset    int                // Required: page offset
}

// where adds the equality predicates of f to a select builder.
func (f TaskListFilters) where(qb sq.SelectBuilder) sq.SelectBuilder {
	if f.Status != nil {
		qb = qb.Where(sq.Eq{"status": *f.Status})
	}
	if f.CreatedBy != nil {
		qb = qb.Where(sq.Eq{"created_by": *f.CreatedBy})
	}
	return qb
}

// List retrieves tasks matching every filter, ordered by id, with pagination applied in SQL.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, error) {
	qb := filters.where(psql.Select(taskColumns...).From("tasks")).
		OrderBy("id ASC").
		Limit(uint64(filters.Limit)).
		Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("query tasks", err)
	}

	return scanTasks(rows)
}

// Count returns the number of tasks matching the filters, ignoring pagination.
func (r *TaskRepository) Count(ctx context.Context, filters TaskListFilters) (int, error) {
	query, args, err := filters.where(psql.Select("COUNT(*)").From("tasks")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, persistenceError("count tasks", err)
	}

	return total, nil
}
