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

// dishRepository implements the DishRepository interface using PostgreSQL.
type dishRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDishRepository creates a new PostgreSQL-backed dish repository.
func NewDishRepository(pool *pgxpool.Pool, logger zerolog.Logger) DishRepository {
	return &dishRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "dish").Logger(),
	}
}

const dishColumns = `
	d.id, d.category_id, d.name, d.description, d.price, d.available,
	d.featured, d.vegetarian, d.vegan, d.spicy, d.gluten_free,
	d.prep_minutes, d.calories, d.rating, d.rating_count, d.views,
	d.created_at, d.updated_at,
	c.id, c.name, c.description, c.display_order, c.active, c.created_at`

const dishSelect = `SELECT ` + dishColumns + `
	FROM dishes d
	JOIN categories c ON c.id = d.category_id
`

// dishFields lists scan destinations matching the dish and category columns of dishSelect.
func dishFields(d *model.Dish, c *model.Category) []any {
	return []any{
		&d.ID, &d.CategoryID, &d.Name, &d.Description, &d.Price, &d.Available,
		&d.Featured, &d.Vegetarian, &d.Vegan, &d.Spicy, &d.GlutenFree,
		&d.PrepMinutes, &d.Calories, &d.Rating, &d.RatingCount, &d.Views,
		&d.CreatedAt, &d.UpdatedAt,
		&c.ID, &c.Name, &c.Description, &c.DisplayOrder, &c.Active, &c.CreatedAt,
	}
}

func scanDish(row pgx.Row) (*model.Dish, error) {
	var d model.Dish
	var c model.Category
	if err := row.Scan(dishFields(&d, &c)...); err != nil {
		return nil, err
	}
	d.Category = &c
	return &d, nil
}

// List retrieves dishes matching the filter.
func (r *dishRepository) List(ctx context.Context, filter model.DishFilter) ([]model.Dish, error) {
	query := dishSelect + `
		WHERE ($1::BIGINT IS NULL OR d.category_id = $1)
		  AND (NOT $2 OR d.available)
		ORDER BY c.display_order, c.name, d.name
	`

	rows, err := r.pool.Query(ctx, query, filter.CategoryID, filter.AvailableOnly)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dishes")
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	dishes := []model.Dish{}
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan dish row")
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, *d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating dish rows")
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}

// GetByID retrieves a single dish by its ID.
func (r *dishRepository) GetByID(ctx context.Context, id int64) (*model.Dish, error) {
	d, err := scanDish(r.pool.QueryRow(ctx, dishSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("dish_id", id).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("dish_id", id).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}
	return d, nil
}

// GetByIDTx reads a dish inside tx so its price cannot change before commit.
func (r *dishRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Dish, error) {
	d, err := scanDish(tx.QueryRow(ctx, dishSelect+` WHERE d.id = $1 FOR SHARE OF d`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("dish_id", id).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("dish_id", id).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}
	return d, nil
}

// Create inserts a dish.
func (r *dishRepository) Create(ctx context.Context, d *model.Dish) error {
	query := `
		INSERT INTO dishes (category_id, name, description, price, available, featured,
			vegetarian, vegan, spicy, gluten_free, prep_minutes, calories, rating, rating_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, views, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		d.CategoryID, d.Name, d.Description, d.Price, d.Available, d.Featured,
		d.Vegetarian, d.Vegan, d.Spicy, d.GlutenFree, d.PrepMinutes, d.Calories, d.Rating, d.RatingCount,
	).Scan(&d.ID, &d.Views, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return model.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).Str("name", d.Name).Msg("failed to create dish")
		return fmt.Errorf("failed to create dish: %w", err)
	}

	r.logger.Debug().Int64("dish_id", d.ID).Msg("dish created successfully")
	return nil
}

// Update overwrites the editable fields of a dish. Prices already captured
// on order line items are unaffected.
func (r *dishRepository) Update(ctx context.Context, d *model.Dish) error {
	query := `
		UPDATE dishes
		SET category_id = $2, name = $3, description = $4, price = $5, available = $6,
			featured = $7, vegetarian = $8, vegan = $9, spicy = $10, gluten_free = $11,
			prep_minutes = $12, calories = $13, rating = $14, rating_count = $15,
			updated_at = NOW()
		WHERE id = $1
		RETURNING views, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		d.ID, d.CategoryID, d.Name, d.Description, d.Price, d.Available,
		d.Featured, d.Vegetarian, d.Vegan, d.Spicy, d.GlutenFree,
		d.PrepMinutes, d.Calories, d.Rating, d.RatingCount,
	).Scan(&d.Views, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrDishNotFound
		}
		if isPgError(err, pgForeignKeyViolation) {
			return model.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).Int64("dish_id", d.ID).Msg("failed to update dish")
		return fmt.Errorf("failed to update dish: %w", err)
	}

	return nil
}

// Delete removes a dish. Dishes referenced by line items are kept.
func (r *dishRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			r.logger.Warn().Int64("dish_id", id).Msg("dish is referenced by order items")
			return model.ErrDishInUse
		}
		r.logger.Error().Err(err).Int64("dish_id", id).Msg("failed to delete dish")
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDishNotFound
	}

	r.logger.Debug().Int64("dish_id", id).Msg("dish deleted")
	return nil
}
