package slots

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/utils"
)

// Random is the randomness source used for reels and the consolation roll.
// *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration)

// ReelObserver is notified as each reel lands
type ReelObserver func(index int, reel domain.Reel)

// Option configures a Machine
type Option func(*Machine)

// WithRandom replaces the randomness source
func WithRandom(r Random) Option {
	return func(m *Machine) { m.rng = r }
}

// WithSleeper replaces the wait used between reels and before settling
func WithSleeper(s Sleeper) Option {
	return func(m *Machine) { m.sleep = s }
}

// OnReelLanded registers the reel landing observer
func OnReelLanded(fn ReelObserver) Option {
	return func(m *Machine) { m.onReel = fn }
}

// WithBetLimits overrides the bet range and step
func WithBetLimits(minBet, maxBet, step decimal.Decimal) Option {
	return func(m *Machine) {
		m.minBet, m.maxBet, m.step = minBet, maxBet, step
	}
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int   { return utils.RandomInt(0, n-1) }
func (globalRandom) Float64() float64 { return utils.RandomFloat() }

func contextSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
