package handler

import (
	"net/http"

	"restaurante/internal/model"
	"restaurante/internal/service"

	"github.com/rs/zerolog"
)

// latestOrdersLimit caps the latest orders listing.
const latestOrdersLimit = 10

// ProjectionHandler serves the read-only Spanish order API.
type ProjectionHandler struct {
	orders *OrderHandler
	logger zerolog.Logger
}

// NewProjectionHandler creates a new projection handler.
func NewProjectionHandler(service service.OrderService, logger zerolog.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		orders: NewOrderHandler(service, logger),
		logger: logger.With().Str("handler", "projection").Logger(),
	}
}

// PendingItems handles GET /ordenes-pendientes/.
func (h *ProjectionHandler) PendingItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.orders.service.ListPendingItems(r.Context())
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.NewOrderItemViews(items))
}

// LatestOrders handles GET /ultimas-ordenes/?estatus=.
func (h *ProjectionHandler) LatestOrders(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.orders.parseFilter(w, r, "estatus")
	if !ok {
		return
	}
	filter.Limit = latestOrdersLimit

	orders, err := h.orders.service.ListOrders(r.Context(), filter)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.NewOrderViews(orders))
}

// Order handles GET /ordenes/{id}/.
func (h *ProjectionHandler) Order(w http.ResponseWriter, r *http.Request) {
	h.orders.Get(w, r)
}
