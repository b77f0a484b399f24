package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"restaurante/internal/database"
	"restaurante/internal/model"
	"restaurante/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the schema and
// returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Seed holds the ids of the rows created by SeedMenu.
type Seed struct {
	Waiter   *model.Employee
	Inactive *model.Employee
	Pizza    *model.Dish
	Soda     *model.Dish
	Table    *model.Table
}

// SeedMenu inserts two employees, one category with two dishes and a table.
// Both employees use the password "secreto".
func SeedMenu(t *testing.T, pool *pgxpool.Pool) Seed {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()
	employees := repository.NewEmployeeRepository(pool, logger)

	newEmployee := func(username string, active bool) *model.Employee {
		e := &model.Employee{Username: username, FirstName: "Ana", LastName: "Lopez", Active: active}
		if err := e.SetPassword("secreto"); err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		if err := employees.Create(ctx, e); err != nil {
			t.Fatalf("failed to seed employee %s: %v", username, err)
		}
		return e
	}

	category := &model.Category{Name: "Platos Fuertes", DisplayOrder: 1, Active: true}
	if err := repository.NewCategoryRepository(pool, logger).Create(ctx, category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	dishes := repository.NewDishRepository(pool, logger)
	newDish := func(name, price string) *model.Dish {
		d := &model.Dish{CategoryID: category.ID, Name: name, Price: decimal.RequireFromString(price), Available: true}
		if err := dishes.Create(ctx, d); err != nil {
			t.Fatalf("failed to seed dish %s: %v", name, err)
		}
		return d
	}

	table := &model.Table{Number: 1, Capacity: 4, State: model.TableAvailable}
	if err := repository.NewTableRepository(pool, logger).Create(ctx, table); err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}

	return Seed{
		Waiter:   newEmployee("mesero1", true),
		Inactive: newEmployee("baja", false),
		Pizza:    newDish("Pizza", "100.00"),
		Soda:     newDish("Refresco", "50.00"),
		Table:    table,
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "dishes", "categories", "dining_tables", "employees"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
