package router

import (
	"net/http"

	"restaurante/internal/handler"
	"restaurante/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Menu       *handler.MenuHandler
	Tables     *handler.TableHandler
	Orders     *handler.OrderHandler
	Employees  *handler.EmployeeHandler
	Dashboard  *handler.DashboardHandler
	Projection *handler.ProjectionHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	apiKey string,
	auth middleware.Authenticator,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Read-only projection
	mux.HandleFunc("GET /ordenes-pendientes/{$}", h.Projection.PendingItems)
	mux.HandleFunc("GET /ultimas-ordenes/{$}", h.Projection.LatestOrders)
	mux.HandleFunc("GET /ordenes/{id}/{$}", h.Projection.Order)

	// Menu
	mux.HandleFunc("GET /admin/categories", h.Menu.ListCategories)
	mux.HandleFunc("POST /admin/categories", h.Menu.CreateCategory)
	mux.HandleFunc("GET /admin/categories/{id}", h.Menu.GetCategory)
	mux.HandleFunc("PUT /admin/categories/{id}", h.Menu.UpdateCategory)
	mux.HandleFunc("DELETE /admin/categories/{id}", h.Menu.DeleteCategory)
	mux.HandleFunc("GET /admin/dishes", h.Menu.ListDishes)
	mux.HandleFunc("POST /admin/dishes", h.Menu.CreateDish)
	mux.HandleFunc("GET /admin/dishes/{id}", h.Menu.GetDish)
	mux.HandleFunc("PUT /admin/dishes/{id}", h.Menu.UpdateDish)
	mux.HandleFunc("DELETE /admin/dishes/{id}", h.Menu.DeleteDish)

	// Tables
	mux.HandleFunc("GET /admin/tables", h.Tables.List)
	mux.HandleFunc("POST /admin/tables", h.Tables.Create)
	mux.HandleFunc("GET /admin/tables/board", h.Tables.Board)
	mux.HandleFunc("GET /admin/tables/{id}", h.Tables.Get)
	mux.HandleFunc("PUT /admin/tables/{id}", h.Tables.Update)
	mux.HandleFunc("DELETE /admin/tables/{id}", h.Tables.Delete)
	mux.HandleFunc("PUT /admin/tables/{id}/state", h.Tables.SetState)

	// Orders
	mux.HandleFunc("GET /admin/orders", h.Orders.List)
	mux.HandleFunc("POST /admin/orders", h.Orders.Create)
	mux.HandleFunc("GET /admin/orders/{id}", h.Orders.Get)
	mux.HandleFunc("DELETE /admin/orders/{id}", h.Orders.Delete)
	mux.HandleFunc("POST /admin/orders/{id}/items", h.Orders.AddItem)
	mux.HandleFunc("DELETE /admin/orders/{id}/items/{itemID}", h.Orders.RemoveItem)
	mux.HandleFunc("PUT /admin/orders/{id}/status", h.Orders.SetStatus)

	// Employees
	mux.HandleFunc("GET /admin/employees", h.Employees.List)
	mux.HandleFunc("POST /admin/employees", h.Employees.Create)
	mux.HandleFunc("PUT /admin/employees/{id}/active", h.Employees.SetActive)

	// Reporting
	mux.HandleFunc("GET /admin/dashboard", h.Dashboard.Get)

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS -> Authenticate
	var handler http.Handler = mux
	handler = middleware.Authenticate(apiKey, auth, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
