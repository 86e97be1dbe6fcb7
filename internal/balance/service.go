package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/apiclient"
	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/realtime"
	"github.com/osse101/SpinHall_Go/internal/utils"
)

// API is the subset of the HTTP API the mirror needs
type API interface {
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	PostTransaction(ctx context.Context, amount decimal.Decimal, action domain.TransactionType) (*apiclient.BalanceResponse, error)
	InvalidateBalance()
}

// Transport is the subset of the real-time transport the mirror needs
type Transport interface {
	Send(eventType string, payload any)
	On(eventType string, l realtime.Listener) realtime.ListenerID
	Off(eventType string, id realtime.ListenerID)
}

// Identity names the player in public win broadcasts
type Identity struct {
	UserID   string
	Username string
	Game     string
}

// Service keeps a local copy of the server balance and mediates every
// balance changing call. The local value only moves on a confirmed
// response or a balance_changed push.
type Service struct {
	api       API
	transport Transport
	notifier  Notifier

	mu       sync.RWMutex
	balance  decimal.Decimal
	identity Identity

	listenerID realtime.ListenerID
	subscribed bool
}

// NewService creates a balance mirror starting at zero
func NewService(api API, transport Transport, notifier Notifier, identity Identity) *Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Service{
		api:       api,
		transport: transport,
		notifier:  notifier,
		balance:   decimal.Zero,
		identity:  identity,
	}
}

// Start loads the balance and subscribes to balance_changed pushes
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	if !s.subscribed && s.transport != nil {
		s.listenerID = s.transport.On(domain.MessageBalanceChanged, s.onBalanceChanged(ctx))
		s.subscribed = true
	}
	s.mu.Unlock()

	_ = s.Load(ctx)
}

// Stop removes the balance_changed subscription
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribed {
		s.transport.Off(domain.MessageBalanceChanged, s.listenerID)
		s.subscribed = false
	}
}

// Load fetches the balance. On failure the last known value is kept.
func (s *Service) Load(ctx context.Context) error {
	b, err := s.api.GetBalance(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgLoadFailed, "error", err)
		return fmt.Errorf("failed to load balance: %w", err)
	}
	s.setBalance(b)
	return nil
}

// Balance returns the cached balance
func (s *Service) Balance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

// SetIdentity updates the player identity, e.g. after login
func (s *Service) SetIdentity(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
}

// PlaceBet debits amount. It refuses locally, without a network call,
// when the cached balance is short.
func (s *Service) PlaceBet(ctx context.Context, amount decimal.Decimal) bool {
	log := logger.FromContext(ctx)

	current := s.Balance()
	if current.LessThan(amount) {
		s.notifier.Notify(NoticeWarning, insufficientBalanceNotice(current, amount))
		return false
	}

	resp, err := s.api.PostTransaction(ctx, amount, domain.TransactionBet)
	if err != nil {
		log.Error(LogMsgBetFailed, "error", err, "amount", amount.String())
		s.notifier.Notify(NoticeError, transactionFailedNotice(err))
		return false
	}
	s.setBalance(resp.Balance)

	id := s.currentIdentity()
	s.send(domain.MessageBalanceUpdate, domain.BalanceUpdateMessage{
		UserID:  id.UserID,
		Balance: utils.ToWire(resp.Balance),
	})
	return true
}

// AddWin credits amount. Non-positive amounts are ignored. Confirmed wins
// at or over the public threshold are broadcast, jackpots additionally.
func (s *Service) AddWin(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	log := logger.FromContext(ctx)

	resp, err := s.api.PostTransaction(ctx, amount, domain.TransactionWin)
	if err != nil {
		log.Error(LogMsgWinFailed, "error", err, "amount", amount.String())
		s.notifier.Notify(NoticeError, transactionFailedNotice(err))
		return err
	}
	s.setBalance(resp.Balance)

	tx := resp.LastTransaction
	if tx == nil || tx.Type != string(domain.TransactionWin) {
		return nil
	}

	id := s.currentIdentity()
	msg := domain.PublicWinMessage{
		Username: id.Username,
		Amount:   utils.ToWire(tx.Amount),
		Game:     id.Game,
	}
	if tx.Amount.GreaterThanOrEqual(domain.PublicWinThreshold) {
		s.send(domain.MessageWin, msg)
	}
	if tx.Amount.GreaterThanOrEqual(domain.JackpotThreshold) {
		s.send(domain.MessageJackpot, msg)
	}
	return nil
}

func (s *Service) onBalanceChanged(ctx context.Context) realtime.Listener {
	return func(data json.RawMessage) {
		var msg domain.BalanceChangedMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.FromContext(ctx).Warn(LogMsgBadPush, "error", err)
			return
		}
		s.setBalance(decimal.NewFromFloat(msg.Balance))
		s.api.InvalidateBalance()
	}
}

func (s *Service) setBalance(b decimal.Decimal) {
	s.mu.Lock()
	s.balance = b
	s.mu.Unlock()
}

func (s *Service) currentIdentity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Service) send(eventType string, payload any) {
	if s.transport != nil {
		s.transport.Send(eventType, payload)
	}
}
