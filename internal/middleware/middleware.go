package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurante/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

type contextKey int

const (
	requestIDKey contextKey = iota
	employeeKey
)

// Authenticator verifies employee credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.Employee, error)
}

// RequestIDFromContext returns the correlation id assigned by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithEmployee attaches the authenticated employee to ctx.
func WithEmployee(ctx context.Context, employee *model.Employee) context.Context {
	return context.WithValue(ctx, employeeKey, employee)
}

// EmployeeFromContext returns the employee authenticated with Basic credentials.
// Requests authenticated with the service API key carry no employee.
func EmployeeFromContext(ctx context.Context) (*model.Employee, bool) {
	employee, ok := ctx.Value(employeeKey).(*model.Employee)
	return employee, ok && employee != nil
}

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// CORS adds CORS headers to the response.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Authenticate accepts either the service API key in X-API-Key or an
// employee's HTTP Basic credentials. Inactive employees are refused with 403.
func Authenticate(apiKey string, auth Authenticator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip authentication for health check endpoint
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			if providedKey := r.Header.Get("X-API-Key"); providedKey != "" {
				if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
					logger.Warn().
						Str("path", r.URL.Path).
						Str("provided_key", providedKey[:min(8, len(providedKey))]).
						Msg("invalid API key")
					writeAuthError(w, r, model.ErrUnauthorised)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok {
				logger.Warn().Str("path", r.URL.Path).Msg("missing credentials")
				writeAuthError(w, r, model.ErrUnauthorised)
				return
			}

			employee, err := auth.Authenticate(r.Context(), username, password)
			if err != nil {
				de, isDomain := model.AsDomainError(err)
				if !isDomain {
					logger.Error().Err(err).Str("username", username).Msg("authentication failed")
					writeJSONError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error")
					return
				}
				logger.Warn().
					Str("path", r.URL.Path).
					Str("username", username).
					Str("reason", de.Code).
					Msg("authentication rejected")
				writeAuthError(w, r, de)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEmployee(r.Context(), employee)))
		})
	}
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("request_id", RequestIDFromContext(r.Context())).
						Msg("panic recovered")

					writeJSONError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err *model.DomainError) {
	status := http.StatusUnauthorized
	if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
	} else {
		w.Header().Set("WWW-Authenticate", `Basic realm="restaurante"`)
	}
	writeJSONError(w, r, status, err.Code, err.Message)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: RequestIDFromContext(r.Context()),
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
