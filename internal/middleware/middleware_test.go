package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurante/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (*model.Employee, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:           "Preflight request",
			method:         http.MethodOptions,
			expectedStatus: http.StatusNoContent,
			expectHandler:  false,
		},
		{
			name:           "GET request",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "PUT request",
			method:         http.MethodPut,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := CORS(testHandler)

			req := httptest.NewRequest(tt.method, "/admin/dishes", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, Authorization, X-API-Key, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "Generated when absent", incoming: ""},
		{name: "Propagated from caller", incoming: "req-abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/ordenes-pendientes/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.Len(t, seen, 36)
			}
		})
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestAuthenticate(t *testing.T) {
	logger := zerolog.Nop()
	validAPIKey := "test-api-key-123"
	mesero := &model.Employee{ID: 3, Username: "mesero1", Active: true}

	tests := []struct {
		name           string
		path           string
		apiKey         string
		username       string
		password       string
		setupMock      func(*MockAuthenticator)
		expectedStatus int
		expectedCode   string
		expectHandler  bool
		expectEmployee bool
	}{
		{
			name:           "Valid API key",
			path:           "/admin/dishes",
			apiKey:         validAPIKey,
			setupMock:      func(m *MockAuthenticator) {},
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Invalid API key",
			path:           "/admin/dishes",
			apiKey:         "invalid-key",
			setupMock:      func(m *MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:           "Missing credentials",
			path:           "/ordenes-pendientes/",
			setupMock:      func(m *MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:     "Valid employee credentials",
			path:     "/ordenes-pendientes/",
			username: "mesero1",
			password: "secreto",
			setupMock: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "mesero1", "secreto").Return(mesero, nil)
			},
			expectedStatus: http.StatusOK,
			expectHandler:  true,
			expectEmployee: true,
		},
		{
			name:     "Wrong password",
			path:     "/ordenes-pendientes/",
			username: "mesero1",
			password: "nope",
			setupMock: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "mesero1", "nope").Return(nil, model.ErrUnauthorised)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:     "Inactive employee",
			path:     "/ordenes/1/",
			username: "baja",
			password: "secreto",
			setupMock: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "baja", "secreto").Return(nil, model.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   model.ErrCodeForbidden,
		},
		{
			name:     "Authenticator failure",
			path:     "/ordenes/1/",
			username: "mesero1",
			password: "secreto",
			setupMock: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "mesero1", "secreto").Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
		{
			name:           "Health check bypasses auth",
			path:           "/health",
			setupMock:      func(m *MockAuthenticator) {},
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			tt.setupMock(auth)

			handlerCalled := false
			var employee *model.Employee
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				employee, _ = EmployeeFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := RequestID(Authenticate(validAPIKey, auth, logger)(testHandler))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.username != "" {
				req.SetBasicAuth(tt.username, tt.password)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			if tt.expectEmployee {
				require.NotNil(t, employee)
				assert.Equal(t, mesero.ID, employee.ID)
			} else {
				assert.Nil(t, employee)
			}
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
				assert.Equal(t, w.Header().Get(RequestIDHeader), resp.CorrelationID)
			}
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
			}

			auth.AssertExpectations(t)
		})
	}
}

func TestEmployeeFromContext(t *testing.T) {
	_, ok := EmployeeFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithEmployee(context.Background(), &model.Employee{ID: 9})
	employee, ok := EmployeeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), employee.ID)

	_, ok = EmployeeFromContext(WithEmployee(context.Background(), nil))
	assert.False(t, ok)
}

func TestLogging(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		method         string
		path           string
		handlerStatus  int
		expectedStatus int
	}{
		{
			name:           "Successful request",
			method:         http.MethodGet,
			path:           "/admin/dishes",
			handlerStatus:  http.StatusOK,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found request",
			method:         http.MethodGet,
			path:           "/ordenes/99/",
			handlerStatus:  http.StatusNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Server error",
			method:         http.MethodPost,
			path:           "/admin/orders",
			handlerStatus:  http.StatusInternalServerError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			})

			handler := Logging(logger)(testHandler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		shouldPanic    bool
		panicValue     interface{}
		expectedStatus int
	}{
		{
			name:           "No panic",
			shouldPanic:    false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Panic with string",
			shouldPanic:    true,
			panicValue:     "something went wrong",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Panic with error",
			shouldPanic:    true,
			panicValue:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.shouldPanic {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Recovery(logger)(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			// Ensure we don't panic in the test
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.shouldPanic {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, model.ErrCodeInternalError, resp.Error)
				assert.Equal(t, "internal server error", resp.Message)
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "Status Created", statusCode: http.StatusCreated},
		{name: "Status Not Found", statusCode: http.StatusNotFound},
		{name: "Status Conflict", statusCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			rw.WriteHeader(tt.statusCode)

			assert.Equal(t, tt.statusCode, rw.statusCode)
			assert.Equal(t, tt.statusCode, w.Code)
		})
	}
}
