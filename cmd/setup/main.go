package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/auth"
	"github.com/osse101/SpinHall_Go/internal/config"
	"github.com/osse101/SpinHall_Go/internal/database"
	"github.com/osse101/SpinHall_Go/internal/database/postgres"
	"github.com/osse101/SpinHall_Go/internal/domain"
)

// setup creates the database if missing, applies migrations and ensures
// an admin account exists. Re-running it resets the admin password.
func main() {
	adminUser := flag.String("admin", envOr("ADMIN_USERNAME", "admin"), "admin username")
	adminPassword := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (or $ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	ctx := context.Background()

	if err := ensureDatabase(ctx, cfg); err != nil {
		log.Fatal(err)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", cfg.DBName, err)
	}
	defer pool.Close()

	fmt.Println("Running migrations...")
	version, err := database.Migrate(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	fmt.Printf("Schema at version %d.\n", version)

	if *adminPassword == "" {
		fmt.Println("No admin password given, skipping admin account.")
		return
	}

	svc := auth.NewService(postgres.NewUserRepository(pool), nil)
	_, err = svc.CreateUser(ctx, *adminUser, *adminPassword, domain.RoleAdmin, decimal.Zero)
	switch {
	case err == nil:
		fmt.Printf("Admin %s created.\n", *adminUser)
	case errors.Is(err, domain.ErrInvalidInput):
		// Most likely the username is taken; treat the run as a password reset
		if err := svc.SetPassword(ctx, *adminUser, *adminPassword); err != nil {
			log.Fatalf("Failed to create or update admin: %v", err)
		}
		fmt.Printf("Admin %s password updated.\n", *adminUser)
	default:
		log.Fatalf("Failed to create admin: %v", err)
	}
}

// ensureDatabase connects to the default 'postgres' database and creates
// cfg.DBName when it does not exist
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	fmt.Println("Database created successfully.")
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
