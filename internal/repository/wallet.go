package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// Wallet defines the interface for balance persistence
type Wallet interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
	BeginTx(ctx context.Context) (WalletTx, error)
}
