package bootstrap

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinHall_Go/internal/config"
	"github.com/osse101/SpinHall_Go/internal/database/postgres"
	"github.com/osse101/SpinHall_Go/internal/repository"
	"github.com/osse101/SpinHall_Go/internal/session"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	User      repository.User
	Wallet    repository.Wallet
	Promotion repository.Promotion
	Sessions  session.Store
}

// InitializeRepositories creates all repository implementations. The
// session store is PostgreSQL unless cfg selects the in-memory store.
func InitializeRepositories(dbPool *pgxpool.Pool, cfg *config.Config) *Repositories {
	return &Repositories{
		User:      postgres.NewUserRepository(dbPool),
		Wallet:    postgres.NewWalletRepository(dbPool),
		Promotion: postgres.NewPromotionRepository(dbPool),
		Sessions:  newSessionStore(dbPool, cfg),
	}
}

func newSessionStore(dbPool *pgxpool.Pool, cfg *config.Config) session.Store {
	slog.Info(LogMsgSessionStoreSelected, "store", cfg.SessionStore)
	if cfg.SessionStore == config.SessionStoreMemory {
		return session.NewMemoryStore(cfg.SessionCacheMax, cfg.SessionTTL)
	}
	return postgres.NewSessionRepository(dbPool)
}

