package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"restaurante/internal/middleware"
	"restaurante/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Str("request_id", requestID).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: requestID,
	})
}

// statusForKind maps a domain error kind to an HTTP status code.
func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindInvalidTransition:
		return http.StatusConflict
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindUnauthorized:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the response for an error returned by a service.
// Anything that is not a domain error is reported as a 500 without detail.
func handleError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if de, ok := model.AsDomainError(err); ok {
		writeError(w, r, statusForKind(de.Kind), de.Code, de.Message, logger)
		return
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// decodeJSON reads the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// pathID parses the named path wildcard as a positive integer id.
func pathID(w http.ResponseWriter, r *http.Request, name string, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, fmt.Sprintf("invalid %s", name), logger)
		return 0, false
	}
	return id, true
}
