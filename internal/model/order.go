package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderPending:   "pendiente",
	OrderPaid:      "pagada",
	OrderCancelled: "cancelada",
}

// orderTransitions is the complete set of legal status changes.
// paid and cancelled are terminal.
var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending: {
		OrderPaid:      true,
		OrderCancelled: true,
	},
}

// Valid reports whether s is part of the order status vocabulary.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the wire label used by the API projection.
func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

// Terminal reports whether no transition can leave s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions[s][next]
}

// ParseOrderStatus accepts either the English constant or the Spanish label.
func ParseOrderStatus(v string) (OrderStatus, error) {
	if s := OrderStatus(v); s.Valid() {
		return s, nil
	}
	for s, label := range orderStatusLabels {
		if label == v {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Order represents a customer's tab.
type Order struct {
	ID         int64       `json:"id" db:"id"`
	EmployeeID int64       `json:"employeeId" db:"employee_id"`
	Employee   *Employee   `json:"employee,omitempty"`
	TableID    *int64      `json:"tableId,omitempty" db:"table_id"`
	Table      *Table      `json:"table,omitempty"`
	PlacedAt   time.Time   `json:"placedAt" db:"placed_at"`
	Status     OrderStatus `json:"status" db:"status"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
	Items      []OrderItem `json:"items"`
}

// Total is the sum of the line item subtotals. It is never stored.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}

// Transition moves the order to next, enforcing the status state machine.
func (o *Order) Transition(next OrderStatus) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.Status = next
	return nil
}

// OrderItem is one dish-and-quantity entry within an order.
// UnitPrice is the dish price captured when the item was added.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"orderId" db:"order_id"`
	DishID    int64           `json:"dishId" db:"dish_id"`
	Dish      *Dish           `json:"dish,omitempty"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Notes     string          `json:"notes" db:"notes"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Subtotal is quantity times the captured unit price.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderItem validates the request against the dish and snapshots its price.
func NewOrderItem(orderID int64, dish *Dish, quantity int, notes string) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !dish.Available {
		return nil, ErrDishUnavailable
	}
	return &OrderItem{
		OrderID:   orderID,
		DishID:    dish.ID,
		Dish:      dish,
		Quantity:  quantity,
		Notes:     notes,
		UnitPrice: dish.Price,
	}, nil
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	EmployeeID *int64 `json:"employeeId,omitempty"`
	TableID    *int64 `json:"tableId,omitempty"`
}

// OrderItemRequest represents the payload for adding a line item.
type OrderItemRequest struct {
	DishID   int64  `json:"dishId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// OrderStatusRequest represents a status change.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderFilter narrows an order listing. Results are newest first.
type OrderFilter struct {
	Status *OrderStatus
	Limit  int
}
