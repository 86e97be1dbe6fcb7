package slots

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// BetPlacer authorizes and debits a bet. A false return declines the spin.
type BetPlacer interface {
	PlaceBet(ctx context.Context, amount decimal.Decimal) bool
}

// WinCreditor credits a settled payout
type WinCreditor interface {
	AddWin(ctx context.Context, amount decimal.Decimal) error
}

// Sender broadcasts a real-time message
type Sender interface {
	Send(eventType string, payload any)
}

// State is the machine's position in the spin sequence
type State int

const (
	StateIdle State = iota
	StateSpinning
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateSpinning:
		return "spinning"
	case StateSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Machine is a five reel slot machine. One spin runs at a time, and the
// bet can only change while idle.
type Machine struct {
	mu    sync.Mutex
	state State
	bet   decimal.Decimal
	win   decimal.Decimal
	reels [domain.ReelCount]domain.Reel
	last  *domain.SpinOutcome

	minBet decimal.Decimal
	maxBet decimal.Decimal
	step   decimal.Decimal

	bets    BetPlacer
	credits WinCreditor
	sender  Sender

	rng    Random
	sleep  Sleeper
	onReel ReelObserver
}

// NewMachine creates an idle machine with the default bet
func NewMachine(bets BetPlacer, credits WinCreditor, sender Sender, opts ...Option) *Machine {
	m := &Machine{
		bet:     domain.DefaultBet,
		win:     decimal.Zero,
		minBet:  domain.MinBet,
		maxBet:  domain.MaxBet,
		step:    domain.BetStep,
		bets:    bets,
		credits: credits,
		sender:  sender,
		rng:     globalRandom{},
		sleep:   contextSleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.bet = m.clamp(m.bet)
	return m
}

// Spin runs one full spin: bet placement, staggered reel landing, settle
// delay, evaluation and win crediting. It returns ErrSpinInProgress when a
// spin is already running and ErrBetDeclined when the bet was refused.
// A started spin always completes; ctx only shortens the waits.
func (m *Machine) Spin(ctx context.Context) (*domain.SpinOutcome, error) {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return nil, domain.ErrSpinInProgress
	}
	m.state = StateSpinning
	bet := m.bet
	m.mu.Unlock()

	if !m.bets.PlaceBet(ctx, bet) {
		log.Debug(LogMsgBetDeclined, "bet", bet.String())
		m.setState(StateIdle)
		return nil, domain.ErrBetDeclined
	}

	// Crediting must not be lost to a caller cancelling mid-spin
	ctx = context.WithoutCancel(ctx)

	m.mu.Lock()
	m.win = decimal.Zero
	m.mu.Unlock()

	m.send(domain.MessageSpinStart, domain.SpinStartMessage{Bet: bet.InexactFloat64()})
	log.Debug(LogMsgSpinStarted, "bet", bet.String())

	var reels [domain.ReelCount]domain.Reel
	for i := 0; i < domain.ReelCount; i++ {
		m.sleep(ctx, time.Duration(i)*ReelDelayStep)

		reel := m.drawReel()
		reels[i] = reel

		m.mu.Lock()
		m.reels[i] = reel
		m.mu.Unlock()

		if m.onReel != nil {
			m.onReel(i, reel)
		}
	}

	m.setState(StateSettling)
	m.sleep(ctx, SettleDelay)

	outcome := evaluate(reels, bet, m.rng)
	log.Debug(LogMsgSpinSettled, "payout", outcome.Payout.String(), "run", outcome.Run, "bonus", outcome.Bonus)

	if outcome.IsWin() {
		m.mu.Lock()
		m.win = outcome.Payout
		m.last = &outcome
		m.mu.Unlock()

		if err := m.credits.AddWin(ctx, outcome.Payout); err != nil {
			log.Error(LogMsgWinCreditFailed, "error", err, "amount", outcome.Payout.String())
		}

		m.send(domain.MessageWin, domain.SpinWinMessage{
			Amount:    outcome.Payout.InexactFloat64(),
			BetAmount: bet.InexactFloat64(),
			Symbols:   outcome.MiddleRowIDs(),
		})
	}

	m.setState(StateIdle)
	return &outcome, nil
}

func (m *Machine) drawReel() domain.Reel {
	var reel domain.Reel
	for row := range reel {
		reel[row] = Catalog[m.rng.Intn(len(Catalog))]
	}
	return reel
}

func (m *Machine) send(eventType string, payload any) {
	if m.sender != nil {
		m.sender.Send(eventType, payload)
	}
}

func (m *Machine) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// IncreaseBet raises the bet by one step, capped at the maximum
func (m *Machine) IncreaseBet() (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return m.bet, domain.ErrSpinInProgress
	}
	m.bet = m.clamp(m.bet.Add(m.step))
	return m.bet, nil
}

// DecreaseBet lowers the bet by one step, floored at the minimum
func (m *Machine) DecreaseBet() (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return m.bet, domain.ErrSpinInProgress
	}
	m.bet = m.clamp(m.bet.Sub(m.step))
	return m.bet, nil
}

// SetBet snaps amount to the nearest step and clamps it into range
func (m *Machine) SetBet(amount decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return m.bet, domain.ErrSpinInProgress
	}
	m.bet = m.clamp(amount)
	return m.bet, nil
}

func (m *Machine) clamp(amount decimal.Decimal) decimal.Decimal {
	if m.step.IsPositive() {
		amount = amount.Div(m.step).Round(0).Mul(m.step)
	}
	if amount.LessThan(m.minBet) {
		return m.minBet
	}
	if amount.GreaterThan(m.maxBet) {
		return m.maxBet
	}
	return amount
}

// State returns the current spin state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Bet returns the current bet
func (m *Machine) Bet() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bet
}

// Win returns the payout of the current or last spin
func (m *Machine) Win() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.win
}

// Reels returns a copy of the visible board
func (m *Machine) Reels() [domain.ReelCount]domain.Reel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reels
}

// LastWin returns the most recent winning outcome, or nil
func (m *Machine) LastWin() *domain.SpinOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
