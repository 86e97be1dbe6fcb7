package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of balance movement
type TransactionType string

const (
	TransactionBet      TransactionType = "bet"
	TransactionWin      TransactionType = "win"
	TransactionWithdraw TransactionType = "withdraw"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBet, TransactionWin, TransactionWithdraw:
		return true
	}
	return false
}

// Debit reports whether the transaction lowers the balance
func (t TransactionType) Debit() bool {
	return t == TransactionBet || t == TransactionWithdraw
}

// Transaction is one persisted balance movement
type Transaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}
