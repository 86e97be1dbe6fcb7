package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/utils"
	"github.com/osse101/SpinHall_Go/internal/wallet"
)

// TransactionRequest is the body of POST /api/balance
type TransactionRequest struct {
	Amount json.Number `json:"amount" validate:"required,money"`
	Action string      `json:"action" validate:"required,oneof=bet win"`
}

// WithdrawRequest is the body of POST /api/withdraw
type WithdrawRequest struct {
	Amount json.Number `json:"amount" validate:"required,money"`
}

// TransactionResponse is one balance movement as sent to clients
type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	BalanceBefore float64   `json:"balanceBefore"`
	BalanceAfter  float64   `json:"balanceAfter"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BalanceResponse carries the caller's balance and, after a write, the
// transaction that produced it
type BalanceResponse struct {
	Balance         float64              `json:"balance"`
	LastTransaction *TransactionResponse `json:"lastTransaction,omitempty"`
}

// HistoryResponse lists recent transactions, newest first
type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func toTransactionResponse(tx *domain.Transaction) *TransactionResponse {
	if tx == nil {
		return nil
	}
	return &TransactionResponse{
		ID:            tx.ID,
		Type:          string(tx.Type),
		Amount:        utils.ToWire(tx.Amount),
		BalanceBefore: utils.ToWire(tx.BalanceBefore),
		BalanceAfter:  utils.ToWire(tx.BalanceAfter),
		CreatedAt:     tx.CreatedAt,
	}
}

// HandleGetBalance returns the logged in user's balance
// @Summary Get balance
// @Tags balance
// @Produce json
// @Success 200 {object} BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/balance [get]
func HandleGetBalance(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		balance, err := svc.GetBalance(r.Context(), sess.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgBalanceFailed, "user_id", sess.UserID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{Balance: utils.ToWire(balance)})
	}
}

// HandlePostBalance applies a bet or win for the logged in user
// @Summary Apply a bet or win
// @Tags balance
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Amount and action (bet or win)"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/balance [post]
func HandlePostBalance(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		var req TransactionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Balance transaction"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		amount, err := decimal.NewFromString(req.Amount.String())
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidAmountError)
			return
		}

		tx, err := svc.Apply(r.Context(), sess.UserID, domain.TransactionType(req.Action), amount)
		if err != nil {
			log.Warn(LogMsgTransactionFailed, "user_id", sess.UserID, "action", req.Action, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info(LogMsgTransactionApplied,
			"user_id", sess.UserID,
			"action", req.Action,
			"amount", tx.Amount.String(),
			"balance", tx.BalanceAfter.String())

		respondJSON(w, http.StatusOK, BalanceResponse{
			Balance:         utils.ToWire(tx.BalanceAfter),
			LastTransaction: toTransactionResponse(tx),
		})
	}
}

// HandleWithdraw debits the logged in user's balance
// @Summary Withdraw funds
// @Description Limited to a few withdrawals per hour
// @Tags balance
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Amount to withdraw"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ratelimit.LimitResponse
// @Router /api/withdraw [post]
func HandleWithdraw(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		var req WithdrawRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
			return
		}

		amount, err := decimal.NewFromString(req.Amount.String())
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidAmountError)
			return
		}

		tx, err := svc.Withdraw(r.Context(), sess.UserID, amount)
		if err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgWithdrawFailed, "user_id", sess.UserID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{
			Balance:         utils.ToWire(tx.BalanceAfter),
			LastTransaction: toTransactionResponse(tx),
		})
	}
}

// HandleGetTransactions lists the logged in user's recent transactions
// @Summary Transaction history
// @Tags balance
// @Produce json
// @Param limit query int false "Max entries (default 20, max 100)"
// @Success 200 {object} HistoryResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/transactions [get]
func HandleGetTransactions(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = n
		}

		txs, err := svc.History(r.Context(), sess.UserID, limit)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgHistoryFailed, "user_id", sess.UserID, "error", err)
			respondServiceError(w, err)
			return
		}

		resp := HistoryResponse{Transactions: make([]TransactionResponse, 0, len(txs))}
		for i := range txs {
			resp.Transactions = append(resp.Transactions, *toTransactionResponse(&txs[i]))
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
