package handler

import (
	"net/http"
	"strconv"

	"restaurante/internal/middleware"
	"restaurante/internal/model"
	"restaurante/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /admin/orders. An employee signed in with Basic
// credentials owns the order; API key callers name the employee in the body.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	var employeeID int64
	if employee, ok := middleware.EmployeeFromContext(r.Context()); ok {
		employeeID = employee.ID
	} else if req.EmployeeID != nil {
		employeeID = *req.EmployeeID
	}

	order, err := h.service.CreateOrder(r.Context(), employeeID, req.TableID)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, model.NewOrderView(order))
}

// List handles GET /admin/orders with optional status and limit filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r, "status")
	if !ok {
		return
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "invalid limit", h.logger)
			return
		}
		filter.Limit = limit
	}

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.NewOrderViews(orders))
}

// Get handles GET /admin/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.NewOrderView(order))
}

// Delete handles DELETE /admin/orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /admin/orders/{id}/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.OrderItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	item, err := h.service.AddLineItem(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, model.NewOrderItemView(item))
}

// RemoveItem handles DELETE /admin/orders/{id}/items/{itemID}.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID", h.logger)
	if !ok {
		return
	}

	if err := h.service.RemoveLineItem(r.Context(), id, itemID); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetStatus handles PUT /admin/orders/{id}/status.
func (h *OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.OrderStatusRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.NewOrderView(order))
}

// parseFilter reads an optional status query parameter in either vocabulary.
func (h *OrderHandler) parseFilter(w http.ResponseWriter, r *http.Request, param string) (model.OrderFilter, bool) {
	var filter model.OrderFilter
	if v := r.URL.Query().Get(param); v != "" {
		status, err := model.ParseOrderStatus(v)
		if err != nil {
			handleError(w, r, err, h.logger)
			return filter, false
		}
		filter.Status = &status
	}
	return filter, true
}
