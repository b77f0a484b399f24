package service

import (
	"context"
	"fmt"

	"restaurante/internal/model"
	"restaurante/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	dishRepo     repository.DishRepository
	tableRepo    repository.TableRepository
	employeeRepo repository.EmployeeRepository
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	dishRepo repository.DishRepository,
	tableRepo repository.TableRepository,
	employeeRepo repository.EmployeeRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		dishRepo:     dishRepo,
		tableRepo:    tableRepo,
		employeeRepo: employeeRepo,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder opens a pending order for an active employee, optionally at a table.
func (s *orderService) CreateOrder(ctx context.Context, employeeID int64, tableID *int64) (*model.Order, error) {
	if employeeID <= 0 {
		return nil, model.ErrMissingEmployee
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		s.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to get employee")
		return nil, wrapErr(err, "failed to create order")
	}
	if employee == nil {
		return nil, model.ErrEmployeeNotFound
	}
	if !employee.Active {
		s.logger.Warn().Int64("employee_id", employeeID).Msg("inactive employee cannot open orders")
		return nil, model.ErrForbidden
	}

	if tableID != nil {
		table, err := s.tableRepo.GetByID(ctx, *tableID)
		if err != nil {
			s.logger.Error().Err(err).Int64("table_id", *tableID).Msg("failed to get table")
			return nil, wrapErr(err, "failed to create order")
		}
		if table == nil {
			return nil, model.ErrTableNotFound
		}
	}

	order := &model.Order{
		EmployeeID: employeeID,
		TableID:    tableID,
		Status:     model.OrderPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to create order")
		return nil, wrapErr(err, "failed to create order")
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("employee_id", employeeID).
		Msg("order created successfully")

	return s.GetOrder(ctx, order.ID)
}

// GetOrder retrieves an order by its ID with all items and dish details.
func (s *orderService) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, wrapErr(err, "failed to get order")
	}

	if order == nil {
		s.logger.Debug().Int64("order_id", id).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// ListOrders retrieves orders newest first.
func (s *orderService) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Limit < 0 {
		filter.Limit = 0
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, wrapErr(err, "failed to list orders")
	}
	return orders, nil
}

// ListPendingItems retrieves the line items of every pending order.
func (s *orderService) ListPendingItems(ctx context.Context) ([]model.OrderItem, error) {
	items, err := s.orderRepo.ListPendingItems(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list pending items")
		return nil, wrapErr(err, "failed to list pending items")
	}
	return items, nil
}

// AddLineItem appends a dish to a pending order. The order row is locked for
// the duration of the transaction and the dish price is read in it.
func (s *orderService) AddLineItem(ctx context.Context, orderID int64, req *model.OrderItemRequest) (item *model.OrderItem, err error) {
	if req == nil {
		return nil, model.ValidationError("Request body is required")
	}
	if req.Quantity <= 0 {
		s.logger.Warn().
			Int64("order_id", orderID).
			Int64("dish_id", req.DishID).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to add order item: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			s.rollback(ctx, tx)
		}
	}()

	if _, err = s.lockPending(ctx, tx, orderID); err != nil {
		return nil, err
	}

	dish, err := s.dishRepo.GetByIDTx(ctx, tx, req.DishID)
	if err != nil {
		s.logger.Error().Err(err).Int64("dish_id", req.DishID).Msg("failed to get dish")
		return nil, wrapErr(err, "failed to add order item")
	}
	if dish == nil {
		return nil, model.ErrDishNotFound
	}

	item, err = model.NewOrderItem(orderID, dish, req.Quantity, req.Notes)
	if err != nil {
		s.logger.Warn().Err(err).Int64("dish_id", dish.ID).Msg("line item rejected")
		return nil, err
	}

	if err = s.orderRepo.AddItem(ctx, tx, item); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to add order item")
		return nil, wrapErr(err, "failed to add order item")
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to add order item: %w", err)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Int64("item_id", item.ID).
		Int64("dish_id", dish.ID).
		Int("quantity", item.Quantity).
		Str("unit_price", item.UnitPrice.StringFixed(2)).
		Msg("order item added")

	return item, nil
}

// RemoveLineItem drops a line item from a pending order.
func (s *orderService) RemoveLineItem(ctx context.Context, orderID, itemID int64) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to remove order item: %w", err)
	}

	defer func() {
		if err != nil {
			s.rollback(ctx, tx)
		}
	}()

	if _, err = s.lockPending(ctx, tx, orderID); err != nil {
		return err
	}

	if err = s.orderRepo.RemoveItem(ctx, tx, orderID, itemID); err != nil {
		s.logger.Warn().Err(err).Int64("order_id", orderID).Int64("item_id", itemID).Msg("failed to remove order item")
		return wrapErr(err, "failed to remove order item")
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to remove order item: %w", err)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Int64("item_id", itemID).
		Msg("order item removed")

	return nil
}

// SetStatus applies a status transition and returns the updated order.
func (s *orderService) SetStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	next, err := model.ParseOrderStatus(status)
	if err != nil {
		s.logger.Warn().Str("status", status).Msg("invalid order status")
		return nil, err
	}

	if err := s.applyStatus(ctx, orderID, next); err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

// applyStatus locks the order, checks the transition and persists it.
func (s *orderService) applyStatus(ctx context.Context, orderID int64, next model.OrderStatus) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to set order status: %w", err)
	}

	defer func() {
		if err != nil {
			s.rollback(ctx, tx)
		}
	}()

	order, err := s.orderRepo.LockByID(ctx, tx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to lock order")
		return wrapErr(err, "failed to set order status")
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	previous := order.Status
	if err = order.Transition(next); err != nil {
		s.logger.Warn().
			Int64("order_id", orderID).
			Str("from", string(previous)).
			Str("to", string(next)).
			Msg("order status transition rejected")
		return err
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, orderID, next); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to update order status")
		return wrapErr(err, "failed to set order status")
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to set order status: %w", err)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Str("from", string(previous)).
		Str("to", string(next)).
		Msg("order status changed")

	return nil
}

// DeleteOrder removes an order and its line items.
func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return wrapErr(err, "failed to delete order")
	}

	s.logger.Info().Int64("order_id", id).Msg("order deleted")
	return nil
}

// lockPending locks the order row and rejects closed orders.
func (s *orderService) lockPending(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.LockByID(ctx, tx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to lock order")
		return nil, wrapErr(err, "failed to lock order")
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderPending {
		s.logger.Warn().
			Int64("order_id", orderID).
			Str("status", string(order.Status)).
			Msg("order is closed")
		return nil, model.ErrOrderNotPending
	}
	return order, nil
}

func (s *orderService) rollback(ctx context.Context, tx pgx.Tx) {
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
	}
}
