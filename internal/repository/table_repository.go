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

// tableRepository implements the TableRepository interface using PostgreSQL.
type tableRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTableRepository creates a new PostgreSQL-backed table repository.
func NewTableRepository(pool *pgxpool.Pool, logger zerolog.Logger) TableRepository {
	return &tableRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "table").Logger(),
	}
}

// List retrieves all tables ordered by number.
func (r *tableRepository) List(ctx context.Context) ([]model.Table, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, number, capacity, state FROM dining_tables ORDER BY number`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tables")
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	tables := []model.Table{}
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.State); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan table row")
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating table rows")
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	return tables, nil
}

// GetByID retrieves a single table by its ID.
func (r *tableRepository) GetByID(ctx context.Context, id int64) (*model.Table, error) {
	var t model.Table
	err := r.pool.QueryRow(ctx, `SELECT id, number, capacity, state FROM dining_tables WHERE id = $1`, id).
		Scan(&t.ID, &t.Number, &t.Capacity, &t.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("table_id", id).Msg("table not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("table_id", id).Msg("failed to query table")
		return nil, fmt.Errorf("failed to query table: %w", err)
	}
	return &t, nil
}

// Create inserts a table.
func (r *tableRepository) Create(ctx context.Context, t *model.Table) error {
	query := `
		INSERT INTO dining_tables (number, capacity, state)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, t.Number, t.Capacity, t.State).Scan(&t.ID); err != nil {
		if isPgError(err, pgUniqueViolation) {
			return model.ErrTableNumberTaken
		}
		r.logger.Error().Err(err).Int("number", t.Number).Msg("failed to create table")
		return fmt.Errorf("failed to create table: %w", err)
	}

	r.logger.Debug().Int64("table_id", t.ID).Int("number", t.Number).Msg("table created successfully")
	return nil
}

// Update overwrites number, capacity and state of a table.
func (r *tableRepository) Update(ctx context.Context, t *model.Table) error {
	query := `UPDATE dining_tables SET number = $2, capacity = $3, state = $4 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, t.ID, t.Number, t.Capacity, t.State)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return model.ErrTableNumberTaken
		}
		r.logger.Error().Err(err).Int64("table_id", t.ID).Msg("failed to update table")
		return fmt.Errorf("failed to update table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTableNotFound
	}
	return nil
}

// UpdateState changes only the occupancy state.
func (r *tableRepository) UpdateState(ctx context.Context, id int64, state model.TableState) error {
	tag, err := r.pool.Exec(ctx, `UPDATE dining_tables SET state = $2 WHERE id = $1`, id, state)
	if err != nil {
		r.logger.Error().Err(err).Int64("table_id", id).Msg("failed to update table state")
		return fmt.Errorf("failed to update table state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTableNotFound
	}

	r.logger.Debug().Int64("table_id", id).Str("state", string(state)).Msg("table state updated")
	return nil
}

// Delete removes a table. Orders placed at it keep their history without a table.
func (r *tableRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dining_tables WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("table_id", id).Msg("failed to delete table")
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTableNotFound
	}
	return nil
}
