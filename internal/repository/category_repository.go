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

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

const categoryColumns = `id, name, description, display_order, active, created_at`

func scanCategory(row pgx.Row, c *model.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.DisplayOrder, &c.Active, &c.CreatedAt)
}

// List retrieves all categories ordered by display order, then name.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY display_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := scanCategory(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var c model.Category
	if err := scanCategory(r.pool.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// Create inserts a category.
func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (name, description, display_order, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, c.Name, c.Description, c.DisplayOrder, c.Active).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return model.ErrCategoryNameTaken
		}
		r.logger.Error().Err(err).Str("name", c.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	r.logger.Debug().Int64("category_id", c.ID).Msg("category created successfully")
	return nil
}

// Update overwrites the editable fields of a category.
func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, display_order = $4, active = $5
		WHERE id = $1
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, c.ID, c.Name, c.Description, c.DisplayOrder, c.Active).
		Scan(&c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCategoryNotFound
		}
		if isPgError(err, pgUniqueViolation) {
			return model.ErrCategoryNameTaken
		}
		r.logger.Error().Err(err).Int64("category_id", c.ID).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Deactivate hides a category without deleting it.
func (r *categoryRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to deactivate category")
		return fmt.Errorf("failed to deactivate category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	r.logger.Debug().Int64("category_id", id).Msg("category deactivated")
	return nil
}
