// store_test.go provides a shared test database helper for the gateway
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"

	"oracatalog/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "ora")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "ora")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testPool opens a pool against the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := database.Connect(context.Background(), testDSN(), 4)
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(pool); err != nil {
		pool.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state for other callers.
	goose.SetBaseFS(nil)

	t.Cleanup(pool.Close)
	return pool
}

// cleanCategories removes test categories (and their products) by name.
func cleanCategories(t *testing.T, pool *pgxpool.Pool, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		pool.Exec(ctx, "DELETE FROM products WHERE parent_category_id IN (SELECT id FROM category WHERE name = $1)", name)
		pool.Exec(ctx, "DELETE FROM category WHERE name = $1", name)
	}
}
