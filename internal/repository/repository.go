package repository

import (
	"context"
	"errors"
	"time"

	"restaurante/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// CategoryRepository defines the interface for menu category data access.
type CategoryRepository interface {
	// List retrieves all categories ordered by display order, then name.
	List(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a category. Returns nil, nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// Create inserts a category and fills in its ID and creation time.
	Create(ctx context.Context, category *model.Category) error

	// Update overwrites the editable fields of a category.
	Update(ctx context.Context, category *model.Category) error

	// Deactivate hides a category without deleting it.
	Deactivate(ctx context.Context, id int64) error
}

// DishRepository defines the interface for dish data access.
type DishRepository interface {
	// List retrieves dishes matching the filter, with their category loaded.
	List(ctx context.Context, filter model.DishFilter) ([]model.Dish, error)

	// GetByID retrieves a dish with its category. Returns nil, nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Dish, error)

	// GetByIDTx reads a dish inside tx, holding a share lock until commit.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Dish, error)

	// Create inserts a dish and fills in its ID and timestamps.
	Create(ctx context.Context, dish *model.Dish) error

	// Update overwrites the editable fields of a dish.
	Update(ctx context.Context, dish *model.Dish) error

	// Delete removes a dish that no order line item references.
	Delete(ctx context.Context, id int64) error
}

// TableRepository defines the interface for dining table data access.
type TableRepository interface {
	// List retrieves all tables ordered by number.
	List(ctx context.Context) ([]model.Table, error)

	// GetByID retrieves a table. Returns nil, nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Table, error)

	Create(ctx context.Context, table *model.Table) error
	Update(ctx context.Context, table *model.Table) error
	UpdateState(ctx context.Context, id int64, state model.TableState) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeRepository defines the interface for staff account data access.
type EmployeeRepository interface {
	List(ctx context.Context) ([]model.Employee, error)

	// GetByID retrieves an employee. Returns nil, nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Employee, error)

	// GetByUsername retrieves an employee for authentication. Returns nil, nil when absent.
	GetByUsername(ctx context.Context, username string) (*model.Employee, error)

	Create(ctx context.Context, employee *model.Employee) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order and fills in its ID and timestamps.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order with its employee, table and line items
	// (each with dish and category). Returns nil, nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// LockByID reads the order row inside tx with FOR UPDATE. Items are not loaded.
	// Returns nil, nil when absent.
	LockByID(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error)

	// List retrieves fully loaded orders, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// ListPendingItems retrieves the line items of every pending order.
	ListPendingItems(ctx context.Context) ([]model.OrderItem, error)

	// AddItem inserts a line item within the provided transaction.
	AddItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error

	// RemoveItem deletes a line item of the given order within the provided transaction.
	RemoveItem(ctx context.Context, tx pgx.Tx, orderID, itemID int64) error

	// UpdateStatus persists a new status within the provided transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.OrderStatus) error

	// Delete removes an order and, by cascade, its line items.
	Delete(ctx context.Context, id int64) error
}

// ReportRepository defines the aggregate queries behind the sales dashboard.
// Only paid orders contribute to sales figures. Ranges are half-open [from, to).
type ReportRepository interface {
	// Sales sums revenue and counts paid orders placed in the range.
	Sales(ctx context.Context, from, to time.Time) (model.SalesSummary, error)

	// DailySales groups paid revenue in the range by calendar day in the named
	// time zone. Days without sales are omitted.
	DailySales(ctx context.Context, from, to time.Time, timezone string) ([]model.DailySales, error)

	// TopDishes ranks dishes by units sold across all paid orders.
	TopDishes(ctx context.Context, limit int) ([]model.DishSales, error)
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
