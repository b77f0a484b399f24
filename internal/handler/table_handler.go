package handler

import (
	"net/http"

	"restaurante/internal/model"
	"restaurante/internal/service"

	"github.com/rs/zerolog"
)

// TableHandler handles dining table HTTP requests.
type TableHandler struct {
	service service.TableService
	logger  zerolog.Logger
}

// NewTableHandler creates a new table handler.
func NewTableHandler(service service.TableService, logger zerolog.Logger) *TableHandler {
	return &TableHandler{
		service: service,
		logger:  logger.With().Str("handler", "table").Logger(),
	}
}

// List handles GET /admin/tables.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

// Board handles GET /admin/tables/board.
func (h *TableHandler) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Board(r.Context())
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// Get handles GET /admin/tables/{id}.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	table, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// Create handles POST /admin/tables.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TableRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	table, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

// Update handles PUT /admin/tables/{id}.
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.TableRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	table, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// SetState handles PUT /admin/tables/{id}/state.
func (h *TableHandler) SetState(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.TableStateRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	table, err := h.service.SetState(r.Context(), id, req.State)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// Delete handles DELETE /admin/tables/{id}.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
