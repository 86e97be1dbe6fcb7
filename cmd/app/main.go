package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // promotion timezones on images without zoneinfo

	"github.com/osse101/SpinHall_Go/internal/auth"
	"github.com/osse101/SpinHall_Go/internal/bootstrap"
	"github.com/osse101/SpinHall_Go/internal/config"
	"github.com/osse101/SpinHall_Go/internal/database"
	"github.com/osse101/SpinHall_Go/internal/handler"
	"github.com/osse101/SpinHall_Go/internal/promotion"
	"github.com/osse101/SpinHall_Go/internal/ratelimit"
	"github.com/osse101/SpinHall_Go/internal/realtime"
	"github.com/osse101/SpinHall_Go/internal/scheduler"
	"github.com/osse101/SpinHall_Go/internal/server"
	"github.com/osse101/SpinHall_Go/internal/session"
	"github.com/osse101/SpinHall_Go/internal/wallet"
	"github.com/osse101/SpinHall_Go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

// @title SpinHall API
// @version 1.0
// @description Balance, auth, promotion and real-time endpoints for the SpinHall slots backend.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spinhall: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		initLogger(cfg)
		slog.Warn("File logging disabled", "error", err)
	} else {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if _, err := database.Migrate(ctx, dbPool); err != nil {
			return err
		}
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool, cfg)

	hub := realtime.NewHub(repos.Sessions)
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		Hub:      hub,
	}); err != nil {
		return err
	}

	handler.InitValidator()

	pool := worker.NewPool(bootstrap.WorkerCount, bootstrap.WorkerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(bootstrap.JobNameSessionPurge, bootstrap.SessionPurgeInterval,
		worker.NewSessionPurgeJob(repos.Sessions, publisher))

	srv := server.NewServer(cfg.Port, server.Dependencies{
		DBPool:           dbPool,
		Sessions:         session.NewManager(repos.Sessions, cfg.SessionTTL, cfg.CookieSecure),
		Wallet:           wallet.NewService(repos.Wallet, publisher),
		Auth:             auth.NewService(repos.User, publisher),
		Promotions:       promotion.NewService(repos.Promotion, promotion.StubUsageCounter{}),
		Hub:              hub,
		LoginLimiter:     ratelimit.NewProgressiveLimiter(),
		WithdrawLimiter:  ratelimit.NewWithdrawLimiter(),
		TrustedProxies:   cfg.TrustedProxies,
		WSAllowedOrigins: cfg.WSAllowedOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		Hub:                hub,
		ResilientPublisher: publisher,
	})
	return nil
}
