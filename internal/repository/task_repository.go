package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brubakerjm/etams/internal/domain"
)

// TaskRepository defines persistence access for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByEmployee(ctx context.Context, employeeID int) ([]domain.Task, error)
	Exists(ctx context.Context, id int) (bool, error)
	CountByAssignee(ctx context.Context) (map[int]int, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskSelect = `
        SELECT t.id, t.title, t.description, t.status, t.deadline, t.assigned_employee_id,
               CASE WHEN e.id IS NULL THEN NULL ELSE e.first_name || ' ' || e.last_name END,
               t.created_at, t.updated_at
        FROM tasks t
        LEFT JOIN employees e ON e.id = t.assigned_employee_id`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, description, status, deadline, assigned_employee_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Deadline,
		task.AssignedEmployeeID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks
        SET title=$1, description=$2, status=$3, deadline=$4, assigned_employee_id=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Deadline,
		task.AssignedEmployeeID,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int) (*domain.Task, error) {
	var task domain.Task
	if err := r.pool.QueryRow(ctx, taskSelect+` WHERE t.id=$1`, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Deadline,
		&task.AssignedEmployeeID,
		&task.AssigneeName,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return r.queryTasks(ctx, taskSelect+` ORDER BY t.id`)
}

func (r *taskRepository) ListByEmployee(ctx context.Context, employeeID int) ([]domain.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE t.assigned_employee_id=$1 ORDER BY t.id`, employeeID)
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Deadline,
			&task.AssignedEmployeeID,
			&task.AssigneeName,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *taskRepository) CountByAssignee(ctx context.Context) (map[int]int, error) {
	const query = `
        SELECT assigned_employee_id, COUNT(*)
        FROM tasks
        WHERE assigned_employee_id IS NOT NULL
        GROUP BY assigned_employee_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var employeeID, count int
		if err := rows.Scan(&employeeID, &count); err != nil {
			return nil, err
		}
		counts[employeeID] = count
	}
	return counts, rows.Err()
}
