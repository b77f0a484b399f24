package repository

import (
	"context"
	"testing"
	"time"

	"restaurante/internal/database"
	"restaurante/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema
// and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// fixtures holds rows shared by most repository tests.
type fixtures struct {
	employee *model.Employee
	category *model.Category
	pizza    *model.Dish
	soda     *model.Dish
	table    *model.Table
}

func seedFixtures(t *testing.T, pool *pgxpool.Pool) fixtures {
	ctx := context.Background()
	logger := zerolog.Nop()

	employee := &model.Employee{Username: "mesero1", FirstName: "Ana", LastName: "López", Active: true}
	require.NoError(t, employee.SetPassword("secreto"))
	require.NoError(t, NewEmployeeRepository(pool, logger).Create(ctx, employee))

	category := &model.Category{Name: "Platos Fuertes", DisplayOrder: 1, Active: true}
	require.NoError(t, NewCategoryRepository(pool, logger).Create(ctx, category))

	dishes := NewDishRepository(pool, logger)
	pizza := &model.Dish{CategoryID: category.ID, Name: "Pizza", Price: decimal.RequireFromString("100.00"), Available: true}
	require.NoError(t, dishes.Create(ctx, pizza))
	soda := &model.Dish{CategoryID: category.ID, Name: "Refresco", Price: decimal.RequireFromString("50.00"), Available: true}
	require.NoError(t, dishes.Create(ctx, soda))

	table := &model.Table{Number: 1, Capacity: 4, State: model.TableAvailable}
	require.NoError(t, NewTableRepository(pool, logger).Create(ctx, table))

	return fixtures{employee: employee, category: category, pizza: pizza, soda: soda, table: table}
}

// seedOrder inserts an order with the given status, placement time and items.
func seedOrder(t *testing.T, pool *pgxpool.Pool, f fixtures, status model.OrderStatus, placedAt time.Time, items ...model.OrderItem) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO orders (employee_id, table_id, status, placed_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		f.employee.ID, f.table.ID, string(status), placedAt,
	).Scan(&id)
	require.NoError(t, err)

	for _, item := range items {
		_, err := pool.Exec(ctx,
			`INSERT INTO order_items (order_id, dish_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
			id, item.DishID, item.Quantity, item.UnitPrice,
		)
		require.NoError(t, err)
	}

	return id
}
