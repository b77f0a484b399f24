package handler

import (
	"net/http"

	"restaurante/internal/model"
	"restaurante/internal/service"

	"github.com/rs/zerolog"
)

// EmployeeHandler handles staff account HTTP requests.
type EmployeeHandler struct {
	service service.EmployeeService
	logger  zerolog.Logger
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(service service.EmployeeService, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger.With().Str("handler", "employee").Logger(),
	}
}

// List handles GET /admin/employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// Create handles POST /admin/employees.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.EmployeeRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	employee, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

// SetActive handles PUT /admin/employees/{id}/active.
func (h *EmployeeHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.ActiveRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	employee, err := h.service.SetActive(r.Context(), id, req.Active)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}
