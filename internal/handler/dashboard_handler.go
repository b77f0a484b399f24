package handler

import (
	"net/http"

	"restaurante/internal/model"
	"restaurante/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the sales dashboard.
type DashboardHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.ReportService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Get handles GET /admin/dashboard?date=YYYY-MM-DD. Without a date the
// dashboard covers today in the report time zone.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.NewDashboardView(dashboard))
}
