package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/repository"
)

// WalletRepository implements the wallet repository for PostgreSQL
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetBalance returns the stored balance
func (r *WalletRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return decimal.Zero, domain.ErrUserNotFound
	}

	var balance decimal.Decimal
	err = r.db.QueryRow(ctx, `SELECT balance FROM users WHERE user_id = $1`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return balance, nil
}

// ListTransactions returns up to limit transactions, newest first
func (r *WalletRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT transaction_id, user_id, type, amount, balance_before, balance_after, created_at
		FROM balance_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var t domain.Transaction
		var txID, uid uuid.UUID
		var txType string
		if err := rows.Scan(&txID, &uid, &txType, &t.Amount, &t.BalanceBefore, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
		}
		t.ID = txID.String()
		t.UserID = uid.String()
		t.Type = domain.TransactionType(txType)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	return txs, nil
}

// BeginTx starts a wallet transaction
func (r *WalletRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &walletTx{tx: tx}, nil
}

type walletTx struct {
	tx pgx.Tx
}

func (t *walletTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *walletTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetBalanceForUpdate reads the balance and locks the row
func (t *walletTx) GetBalanceForUpdate(ctx context.Context, userID string) (decimal.Decimal, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return decimal.Zero, domain.ErrUserNotFound
	}

	var balance decimal.Decimal
	err = t.tx.QueryRow(ctx, `SELECT balance FROM users WHERE user_id = $1 FOR UPDATE`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToLockBalance, err)
	}
	return balance, nil
}

func (t *walletTx) UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	id, err := parseUUID(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	_, err = t.tx.Exec(ctx, `UPDATE users SET balance = $1, updated_at = NOW() WHERE user_id = $2`, balance, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	return nil
}

func (t *walletTx) InsertTransaction(ctx context.Context, rec *domain.Transaction) error {
	txID, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	uid, err := parseUUID(rec.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO balance_transactions
			(transaction_id, user_id, type, amount, balance_before, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txID, uid, string(rec.Type), rec.Amount, rec.BalanceBefore, rec.BalanceAfter, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	return nil
}
