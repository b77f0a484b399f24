package repository

import (
	"context"
	"fmt"
	"time"

	"restaurante/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reportRepository implements the ReportRepository interface using PostgreSQL.
type reportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

// Sales sums revenue and counts paid orders placed in [from, to).
// Paid orders without line items count with zero revenue.
func (r *reportRepository) Sales(ctx context.Context, from, to time.Time) (model.SalesSummary, error) {
	query := `
		SELECT COUNT(DISTINCT o.id),
			COALESCE(SUM(i.quantity * i.unit_price), 0)
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status = $1
		  AND o.placed_at >= $2
		  AND o.placed_at < $3
	`

	var summary model.SalesSummary
	err := r.pool.QueryRow(ctx, query, string(model.OrderPaid), from, to).
		Scan(&summary.OrderCount, &summary.Total)
	if err != nil {
		r.logger.Error().
			Err(err).
			Time("from", from).
			Time("to", to).
			Msg("failed to query sales")
		return model.SalesSummary{}, fmt.Errorf("failed to query sales: %w", err)
	}

	return summary, nil
}

// DailySales groups paid revenue by local calendar day.
func (r *reportRepository) DailySales(ctx context.Context, from, to time.Time, timezone string) ([]model.DailySales, error) {
	query := `
		SELECT (o.placed_at AT TIME ZONE $4)::DATE AS day,
			COALESCE(SUM(i.quantity * i.unit_price), 0)
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.status = $1
		  AND o.placed_at >= $2
		  AND o.placed_at < $3
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.pool.Query(ctx, query, string(model.OrderPaid), from, to, timezone)
	if err != nil {
		r.logger.Error().Err(err).Str("timezone", timezone).Msg("failed to query daily sales")
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	days := []model.DailySales{}
	for rows.Next() {
		var d model.DailySales
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan daily sales row")
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating daily sales rows")
		return nil, fmt.Errorf("error iterating daily sales: %w", err)
	}

	return days, nil
}

// TopDishes ranks dishes by units sold across paid orders. Dishes are
// grouped by id, so two dishes sharing a name are ranked separately.
func (r *reportRepository) TopDishes(ctx context.Context, limit int) ([]model.DishSales, error) {
	query := `
		SELECT d.id, d.name, c.name,
			SUM(i.quantity) AS units,
			SUM(i.quantity * i.unit_price) AS revenue
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN dishes d ON d.id = i.dish_id
		JOIN categories c ON c.id = d.category_id
		WHERE o.status = $1
		GROUP BY d.id, d.name, c.name
		ORDER BY units DESC, d.id ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, string(model.OrderPaid), limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query top dishes")
		return nil, fmt.Errorf("failed to query top dishes: %w", err)
	}
	defer rows.Close()

	dishes := []model.DishSales{}
	for rows.Next() {
		var d model.DishSales
		if err := rows.Scan(&d.DishID, &d.DishName, &d.CategoryName, &d.Units, &d.Revenue); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan top dish row")
			return nil, fmt.Errorf("failed to scan top dish: %w", err)
		}
		dishes = append(dishes, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating top dish rows")
		return nil, fmt.Errorf("error iterating top dishes: %w", err)
	}

	return dishes, nil
}
