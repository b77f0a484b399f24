package service

import (
	"context"
	"fmt"

	"restaurante/internal/model"
)

// MenuService defines operations for the menu catalog.
type MenuService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error)

	// DeleteCategory deactivates the category; its dishes are kept.
	DeleteCategory(ctx context.Context, id int64) error

	ListDishes(ctx context.Context, filter model.DishFilter) ([]model.Dish, error)
	GetDish(ctx context.Context, id int64) (*model.Dish, error)
	CreateDish(ctx context.Context, req *model.DishRequest) (*model.Dish, error)
	UpdateDish(ctx context.Context, id int64, req *model.DishRequest) (*model.Dish, error)

	// DeleteDish removes a dish that no order references.
	DeleteDish(ctx context.Context, id int64) error
}

// TableService defines operations for the table registry.
type TableService interface {
	List(ctx context.Context) ([]model.Table, error)
	Get(ctx context.Context, id int64) (*model.Table, error)
	Create(ctx context.Context, req *model.TableRequest) (*model.Table, error)
	Update(ctx context.Context, id int64, req *model.TableRequest) (*model.Table, error)

	// SetState moves a table to any state in the vocabulary.
	SetState(ctx context.Context, id int64, state string) (*model.Table, error)
	Delete(ctx context.Context, id int64) error

	// Board partitions every table by occupancy state.
	Board(ctx context.Context) (*model.TableBoard, error)
}

// EmployeeService defines operations for staff accounts.
type EmployeeService interface {
	List(ctx context.Context) ([]model.Employee, error)
	Get(ctx context.Context, id int64) (*model.Employee, error)
	Create(ctx context.Context, req *model.EmployeeRequest) (*model.Employee, error)
	SetActive(ctx context.Context, id int64, active bool) (*model.Employee, error)

	// Authenticate verifies credentials. Unknown users and wrong passwords
	// yield ErrUnauthorised; inactive accounts yield ErrForbidden.
	Authenticate(ctx context.Context, username, password string) (*model.Employee, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder opens a pending order with no line items.
	CreateOrder(ctx context.Context, employeeID int64, tableID *int64) (*model.Order, error)

	// GetOrder retrieves an order with its line items, employee and table.
	GetOrder(ctx context.Context, id int64) (*model.Order, error)

	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// ListPendingItems retrieves the line items of all pending orders.
	ListPendingItems(ctx context.Context) ([]model.OrderItem, error)

	// AddLineItem appends a dish to a pending order, capturing the dish's current price.
	AddLineItem(ctx context.Context, orderID int64, req *model.OrderItemRequest) (*model.OrderItem, error)

	// RemoveLineItem drops a line item from a pending order.
	RemoveLineItem(ctx context.Context, orderID, itemID int64) error

	// SetStatus applies a status transition and returns the updated order.
	SetStatus(ctx context.Context, orderID int64, status string) (*model.Order, error)

	DeleteOrder(ctx context.Context, id int64) error
}

// ReportService defines the sales dashboard.
type ReportService interface {
	// Dashboard aggregates sales for the calendar day given as YYYY-MM-DD in
	// the report time zone. An empty date means today.
	Dashboard(ctx context.Context, date string) (*model.Dashboard, error)
}

// wrapErr passes domain errors through untouched and wraps everything else.
func wrapErr(err error, msg string) error {
	if _, ok := model.AsDomainError(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
