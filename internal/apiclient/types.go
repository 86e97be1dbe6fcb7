package apiclient

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of POST /api/balance
type TransactionRequest struct {
	Amount json.Number `json:"amount"`
	Action string          `json:"action"`
}

// WithdrawRequest is the body of POST /api/withdraw
type WithdrawRequest struct {
	Amount json.Number `json:"amount"`
}

// LoginRequest is the body of POST /api/admin/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Transaction mirrors the server's transaction view
type Transaction struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BalanceResponse is returned by the balance and withdraw endpoints
type BalanceResponse struct {
	Balance         decimal.Decimal `json:"balance"`
	LastTransaction *Transaction    `json:"lastTransaction,omitempty"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AvailabilityResponse is returned by the promotion availability endpoint
type AvailabilityResponse struct {
	PromotionID string `json:"promotionId"`
	Available   bool   `json:"available"`
	CanUse      bool   `json:"canUse"`
}
