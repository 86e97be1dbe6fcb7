package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WalletTx is a transaction holding a user's balance row lock
type WalletTx interface {
	Tx
	// GetBalanceForUpdate locks the user's row until the transaction ends
	GetBalanceForUpdate(ctx context.Context, userID string) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error
	InsertTransaction(ctx context.Context, tx *domain.Transaction) error
}
