package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/repository"
	"github.com/osse101/SpinHall_Go/internal/utils"
)

// Service defines the interface for balance operations
type Service interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	Apply(ctx context.Context, userID string, action domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error)
	History(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

type service struct {
	repo      repository.Wallet
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new wallet service. publisher may be nil.
func NewService(repo repository.Wallet, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// GetBalance returns the user's current balance
func (s *service) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Apply records a bet or a win
func (s *service) Apply(ctx context.Context, userID string, action domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	if action != domain.TransactionBet && action != domain.TransactionWin {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAction, action)
	}
	return s.record(ctx, userID, action, amount)
}

// Withdraw debits the balance
func (s *service) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error) {
	return s.record(ctx, userID, domain.TransactionWithdraw, amount)
}

// History returns the user's most recent transactions, newest first
func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	txs, err := s.repo.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !utils.ValidMoneyAmount(amount) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount.String())
	}
	return nil
}

// record moves amount in one transaction holding the user's row lock, so
// concurrent requests for the same user serialize in the database
func (s *service) record(ctx context.Context, userID string, txType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgApplyCalled, "user_id", userID, "type", txType, "amount", amount.String())

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error(LogMsgBeginTxFailed, "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	before, err := tx.GetBalanceForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}

	after := before.Add(amount)
	if txType.Debit() {
		if before.LessThan(amount) {
			log.Info(LogMsgInsufficientFund, "user_id", userID, "balance", before.String(), "amount", amount.String())
			return nil, domain.ErrInsufficientFunds
		}
		after = before.Sub(amount)
	}

	if err := tx.UpdateBalance(ctx, userID, after); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	record := &domain.Transaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		CreatedAt:     s.now().UTC(),
	}
	if err := tx.InsertTransaction(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogMsgCommitFailed, "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info(LogMsgApplied,
		"user_id", userID,
		"type", txType,
		"amount", amount.String(),
		"balance", after.String())

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewBalanceChangedEvent(record))
	}
	return record, nil
}
