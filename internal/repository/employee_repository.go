package repository

import (
	"context"
	"errors"
	"fmt"

	"restaurante/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// employeeRepository implements the EmployeeRepository interface using PostgreSQL.
type employeeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewEmployeeRepository creates a new PostgreSQL-backed employee repository.
func NewEmployeeRepository(pool *pgxpool.Pool, logger zerolog.Logger) EmployeeRepository {
	return &employeeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "employee").Logger(),
	}
}

const employeeColumns = `id, username, first_name, last_name, password_hash, active, created_at`

func scanEmployee(row pgx.Row, e *model.Employee) error {
	return row.Scan(&e.ID, &e.Username, &e.FirstName, &e.LastName, &e.PasswordHash, &e.Active, &e.CreatedAt)
}

// List retrieves all employees ordered by username.
func (r *employeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY username`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query employees")
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := scanEmployee(rows, &e); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan employee row")
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating employee rows")
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetByID retrieves an employee by ID.
func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetByUsername retrieves an employee by username.
func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*model.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username = $1`, username)
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (*model.Employee, error) {
	var e model.Employee
	if err := scanEmployee(r.pool.QueryRow(ctx, query, arg), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Interface("key", arg).Msg("employee not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Interface("key", arg).Msg("failed to query employee")
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}
	return &e, nil
}

// Create inserts an employee. PasswordHash must already be set.
func (r *employeeRepository) Create(ctx context.Context, e *model.Employee) error {
	query := `
		INSERT INTO employees (username, first_name, last_name, password_hash, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, e.Username, e.FirstName, e.LastName, e.PasswordHash, e.Active).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return model.ErrUsernameTaken
		}
		r.logger.Error().Err(err).Str("username", e.Username).Msg("failed to create employee")
		return fmt.Errorf("failed to create employee: %w", err)
	}

	r.logger.Debug().Int64("employee_id", e.ID).Msg("employee created successfully")
	return nil
}

// SetActive enables or disables an employee account.
func (r *employeeRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		r.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to update employee")
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}
