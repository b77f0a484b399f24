package handler

import (
	"net/http"
	"strconv"

	"restaurante/internal/model"
	"restaurante/internal/service"

	"github.com/rs/zerolog"
)

// MenuHandler handles category and dish HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// ListCategories handles GET /admin/categories.
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /admin/categories/{id}.
func (h *MenuHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CreateCategory handles POST /admin/categories.
func (h *MenuHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /admin/categories/{id}.
func (h *MenuHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.CategoryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /admin/categories/{id}.
func (h *MenuHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDishes handles GET /admin/dishes with optional category_id and available filters.
func (h *MenuHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	var filter model.DishFilter

	query := r.URL.Query()
	if v := query.Get("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "invalid category_id", h.logger)
			return
		}
		filter.CategoryID = &categoryID
	}
	if v := query.Get("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "invalid available flag", h.logger)
			return
		}
		filter.AvailableOnly = available
	}

	dishes, err := h.service.ListDishes(r.Context(), filter)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

// GetDish handles GET /admin/dishes/{id}.
func (h *MenuHandler) GetDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	dish, err := h.service.GetDish(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// CreateDish handles POST /admin/dishes.
func (h *MenuHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	var req model.DishRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	dish, err := h.service.CreateDish(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}

// UpdateDish handles PUT /admin/dishes/{id}.
func (h *MenuHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.DishRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	dish, err := h.service.UpdateDish(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// DeleteDish handles DELETE /admin/dishes/{id}.
func (h *MenuHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteDish(r.Context(), id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
