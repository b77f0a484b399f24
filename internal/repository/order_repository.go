package repository

import (
	"context"
	"errors"
	"fmt"

	"restaurante/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderSelect = `
	SELECT o.id, o.employee_id, o.table_id, o.placed_at, o.status, o.updated_at,
		e.id, e.username, e.first_name, e.last_name, e.active, e.created_at,
		t.id, t.number, t.capacity, t.state
	FROM orders o
	JOIN employees e ON e.id = o.employee_id
	LEFT JOIN dining_tables t ON t.id = o.table_id
`

const itemSelect = `
	SELECT i.id, i.order_id, i.dish_id, i.quantity, i.notes, i.unit_price, i.created_at,
	` + dishColumns + `
	FROM order_items i
	JOIN dishes d ON d.id = i.dish_id
	JOIN categories c ON c.id = d.category_id
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var e model.Employee
	var (
		tableID       *int64
		tableNumber   *int
		tableCapacity *int
		tableState    *string
	)

	err := row.Scan(
		&o.ID, &o.EmployeeID, &o.TableID, &o.PlacedAt, &o.Status, &o.UpdatedAt,
		&e.ID, &e.Username, &e.FirstName, &e.LastName, &e.Active, &e.CreatedAt,
		&tableID, &tableNumber, &tableCapacity, &tableState,
	)
	if err != nil {
		return nil, err
	}

	o.Employee = &e
	if tableID != nil {
		o.Table = &model.Table{
			ID:       *tableID,
			Number:   *tableNumber,
			Capacity: *tableCapacity,
			State:    model.TableState(*tableState),
		}
	}
	o.Items = []model.OrderItem{}
	return &o, nil
}

func scanItem(row pgx.Row) (*model.OrderItem, error) {
	var item model.OrderItem
	var d model.Dish
	var c model.Category

	dest := append([]any{
		&item.ID, &item.OrderID, &item.DishID, &item.Quantity, &item.Notes, &item.UnitPrice, &item.CreatedAt,
	}, dishFields(&d, &c)...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	d.Category = &c
	item.Dish = &d
	return &item, nil
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new pending order.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (employee_id, table_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, placed_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, order.EmployeeID, order.TableID, order.Status).
		Scan(&order.ID, &order.PlacedAt, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if pgErr.ConstraintName == "orders_table_id_fkey" {
				return model.ErrTableNotFound
			}
			return model.ErrEmployeeNotFound
		}
		r.logger.Error().
			Err(err).
			Int64("employee_id", order.EmployeeID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.loadItems(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if list, ok := items[id]; ok {
		order.Items = list
	}

	return order, nil
}

// LockByID reads and row-locks an order inside tx.
func (r *orderRepository) LockByID(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error) {
	query := `
		SELECT id, employee_id, table_id, placed_at, status, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`

	var o model.Order
	err := tx.QueryRow(ctx, query, id).Scan(&o.ID, &o.EmployeeID, &o.TableID, &o.PlacedAt, &o.Status, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to lock order")
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	return &o, nil
}

// List retrieves orders newest first, optionally filtered by status.
// A zero limit returns every matching order.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := orderSelect + `
		WHERE ($1::TEXT IS NULL OR o.status = $1)
		ORDER BY o.placed_at DESC, o.id DESC
		LIMIT NULLIF($2::INT, 0)
	`

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := r.pool.Query(ctx, query, status, filter.Limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	var ids []int64
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if list, ok := items[orders[i].ID]; ok {
			orders[i].Items = list
		}
	}

	return orders, nil
}

// ListPendingItems retrieves the line items of every pending order,
// oldest order first.
func (r *orderRepository) ListPendingItems(ctx context.Context) ([]model.OrderItem, error) {
	query := itemSelect + `
		JOIN orders o ON o.id = i.order_id
		WHERE o.status = $1
		ORDER BY o.placed_at, i.id
	`

	rows, err := r.pool.Query(ctx, query, string(model.OrderPending))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query pending order items")
		return nil, fmt.Errorf("failed to query pending order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	query := itemSelect + `
		WHERE i.order_id = ANY($1)
		ORDER BY i.order_id, i.id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int("order_count", len(orderIDs)).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// AddItem inserts a line item and bumps the order's update time.
func (r *orderRepository) AddItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO order_items (order_id, dish_id, quantity, notes, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, item.OrderID, item.DishID, item.Quantity, item.Notes, item.UnitPrice).QueryRow(func(row pgx.Row) error {
		return row.Scan(&item.ID, &item.CreatedAt)
	})
	batch.Queue(`UPDATE orders SET updated_at = NOW() WHERE id = $1`, item.OrderID)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", item.OrderID).
			Int64("dish_id", item.DishID).
			Msg("failed to create order item")
		return fmt.Errorf("failed to create order item: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", item.OrderID).
		Int64("item_id", item.ID).
		Msg("order item created successfully")

	return nil
}

// RemoveItem deletes one line item of an order.
func (r *orderRepository) RemoveItem(ctx context.Context, tx pgx.Tx, orderID, itemID int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM order_items WHERE id = $1 AND order_id = $2`, itemID, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Int64("item_id", itemID).Msg("failed to delete order item")
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderItemNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET updated_at = NOW() WHERE id = $1`, orderID); err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to touch order")
		return fmt.Errorf("failed to touch order: %w", err)
	}

	return nil
}

// UpdateStatus persists a new order status.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.OrderStatus) error {
	tag, err := tx.Exec(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Debug().
		Int64("order_id", id).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// Delete removes an order and its line items.
func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
