package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurante/internal/config"
	"restaurante/internal/database"
	"restaurante/internal/handler"
	"restaurante/internal/repository"
	"restaurante/internal/router"
	"restaurante/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting restaurante API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	dishRepo := repository.NewDishRepository(pool, logger)
	tableRepo := repository.NewTableRepository(pool, logger)
	employeeRepo := repository.NewEmployeeRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	// Initialize services
	menuService := service.NewMenuService(categoryRepo, dishRepo, logger)
	tableService := service.NewTableService(tableRepo, logger)
	employeeService := service.NewEmployeeService(employeeRepo, logger)
	orderService := service.NewOrderService(orderRepo, dishRepo, tableRepo, employeeRepo, logger)
	reportService := service.NewReportService(reportRepo, orderRepo, cfg.Report.Location(), logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Menu:       handler.NewMenuHandler(menuService, logger),
		Tables:     handler.NewTableHandler(tableService, logger),
		Orders:     handler.NewOrderHandler(orderService, logger),
		Employees:  handler.NewEmployeeHandler(employeeService, logger),
		Dashboard:  handler.NewDashboardHandler(reportService, logger),
		Projection: handler.NewProjectionHandler(orderService, logger),
	}, cfg.Auth.APIKey, employeeService, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("report_timezone", cfg.Report.Timezone).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
