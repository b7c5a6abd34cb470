package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
)

type PgxTaskRepository struct {
	pool *pgxpool.Pool
}

// newPgxTaskRepository creates a new repository for task-board cards.
func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepository {
	return &PgxTaskRepository{pool: pool}
}

// Ensure PgxTaskRepository implements portsrepo.TaskRepository
var _ portsrepo.TaskRepository = (*PgxTaskRepository)(nil)

const taskColumns = `task_id, title, description, status, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.TaskID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.DueDate,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTask inserts a new task.
func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		task.TaskID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.CreatedBy,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: task with ID %s already exists", apperrors.ErrDuplicate, task.TaskID)
		}
		return fmt.Errorf("failed to save task %s: %w", task.TaskID, err)
	}
	return nil
}

// FindTaskByID retrieves a task by its ID.
func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE task_id = $1;
	`
	t, err := scanTask(r.pool.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID %s: %w", taskID, err)
	}
	return &t, nil
}

// ListTasks retrieves all tasks, optionally limited to one board column.
func (r *PgxTaskRepository) ListTasks(ctx context.Context, status *domain.TaskStatus) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
	`
	args := []any{}
	if status != nil {
		args = append(args, *status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// UpdateTask updates an existing task.
func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, due_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE task_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		task.TaskID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.TaskID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task.
func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	query := `DELETE FROM tasks WHERE task_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
