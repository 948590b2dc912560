package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brubakerjm/etams/internal/domain"
)

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*domain.Employee, error)
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, first_name, last_name, email, username, password_hash, role, admin, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (first_name, last_name, email, username, password_hash, role, admin)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Username,
		employee.PasswordHash,
		employee.RoleLabel,
		employee.Admin,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees
        SET first_name=$1, last_name=$2, email=$3, username=$4, password_hash=$5, role=$6, admin=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Username,
		employee.PasswordHash,
		employee.RoleLabel,
		employee.Admin,
		employee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error {
	const query = `UPDATE employees SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int) (*domain.Employee, error) {
	return r.getBy(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id)
}

func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	return r.getBy(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username=$1`, username)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.getBy(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email=$1`, email)
}

func (r *employeeRepository) getBy(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Username,
		&employee.PasswordHash,
		&employee.RoleLabel,
		&employee.Admin,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.FirstName,
			&employee.LastName,
			&employee.Email,
			&employee.Username,
			&employee.PasswordHash,
			&employee.RoleLabel,
			&employee.Admin,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}
