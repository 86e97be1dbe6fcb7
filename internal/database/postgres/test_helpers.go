package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/SpinHall_Go/internal/database"
)

var (
	testPool    *pgxpool.Pool
	testDBErr   error
	testDBOnce  sync.Once
	testCleanup func()
)

// setupTestDB starts one postgres container for the package, applies the
// embedded migrations and returns a pool. Tests skip when Docker is
// unavailable.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDBOnce.Do(func() {
		ctx := context.Background()

		var pgContainer *postgres.PostgresContainer
		func() {
			defer func() {
				if r := recover(); r != nil {
					testDBErr = errDockerUnavailable
				}
			}()
			pgContainer, testDBErr = postgres.Run(ctx,
				"postgres:15-alpine",
				postgres.WithDatabase("testdb"),
				postgres.WithUsername("testuser"),
				postgres.WithPassword("testpass"),
				testcontainers.WithWaitStrategy(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(30*time.Second)),
			)
		}()
		if testDBErr != nil {
			return
		}

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testDBErr = err
			return
		}

		pool, err := database.NewPool(ctx, connStr, 10, time.Minute, 5*time.Minute)
		if err != nil {
			testDBErr = err
			return
		}
		if _, err := database.Migrate(ctx, pool); err != nil {
			testDBErr = err
			return
		}

		testPool = pool
		testCleanup = func() {
			pool.Close()
			_ = pgContainer.Terminate(ctx)
		}
	})

	if testDBErr != nil {
		t.Skipf("Skipping integration test: database not available: %v", testDBErr)
	}
	return testPool
}

type dockerError string

func (e dockerError) Error() string { return string(e) }

const errDockerUnavailable = dockerError("docker unavailable")
