package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpinHall_Go/internal/logger"
)

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed       bool
	Limit         int
	Remaining     int
	Strikes       int
	NextAttemptIn time.Duration
}

// Limiter decides whether the request identified by key may proceed
type Limiter interface {
	Allow(key string) Decision
}

// counter is the per-key state. Windows are fixed: they start at the
// first attempt after the previous window ended.
type counter struct {
	windowStart time.Time
	attempts    int
	strikes     int
	lastAttempt time.Time
	limited     bool // a strike was already recorded for this window
}

// ProgressiveLimiter allows max(base - strikes, floor) attempts per window.
// The first rejected attempt in a window adds one strike. Strikes only go
// away through Reset or when the key expires from the store.
type ProgressiveLimiter struct {
	mu       sync.Mutex
	counters *expirable.LRU[string, *counter]
	window   time.Duration
	base     int
	floor    int
	now      func() time.Time
}

// NewProgressiveLimiter creates the login limiter with default settings
func NewProgressiveLimiter() *ProgressiveLimiter {
	return &ProgressiveLimiter{
		counters: expirable.NewLRU[string, *counter](DefaultMaxKeys, nil, StrikeTTL),
		window:   LoginWindow,
		base:     LoginBaseAttempts,
		floor:    LoginMinAttempts,
		now:      time.Now,
	}
}

// LimitFor returns the per-window allowance for a strike count
func (l *ProgressiveLimiter) LimitFor(strikes int) int {
	return max(l.base-strikes, l.floor)
}

// Allow counts one attempt for key
func (l *ProgressiveLimiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.counters.Get(key)
	if !ok {
		c = &counter{windowStart: now}
	}
	if now.Sub(c.windowStart) >= l.window {
		c.windowStart = now
		c.attempts = 0
		c.limited = false
	}

	limit := l.LimitFor(c.strikes)
	c.attempts++

	d := Decision{Limit: limit}
	if c.attempts > limit {
		if !c.limited {
			c.strikes++
			c.limited = true
			logger.Debug(LogMsgStrikeAdded, "key", key, "strikes", c.strikes)
		}
		d.Strikes = c.strikes
		d.NextAttemptIn = max(c.lastAttempt.Add(l.window).Sub(now), 0)
		l.counters.Add(key, c)
		return d
	}

	c.lastAttempt = now
	l.counters.Add(key, c)

	d.Allowed = true
	d.Remaining = limit - c.attempts
	d.Strikes = c.strikes
	return d
}

// Strikes returns the current strike count for key
func (l *ProgressiveLimiter) Strikes(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.counters.Peek(key); ok {
		return c.strikes
	}
	return 0
}

// Reset clears strikes, attempts and the last attempt time for key
func (l *ProgressiveLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counters.Remove(key) {
		logger.Debug(LogMsgStrikesReset, "key", key)
	}
}

// FixedLimiter allows a fixed number of attempts per window, with no
// escalation.
type FixedLimiter struct {
	mu       sync.Mutex
	counters *expirable.LRU[string, *counter]
	window   time.Duration
	limit    int
	now      func() time.Time
}

// NewFixedLimiter creates a limiter allowing limit attempts per window
func NewFixedLimiter(limit int, window time.Duration) *FixedLimiter {
	return &FixedLimiter{
		counters: expirable.NewLRU[string, *counter](DefaultMaxKeys, nil, window),
		window:   window,
		limit:    limit,
		now:      time.Now,
	}
}

// NewWithdrawLimiter creates the 3-per-hour withdrawal limiter
func NewWithdrawLimiter() *FixedLimiter {
	return NewFixedLimiter(WithdrawAttempts, WithdrawWindow)
}

// Allow counts one attempt for key
func (l *FixedLimiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.counters.Get(key)
	if !ok || now.Sub(c.windowStart) >= l.window {
		c = &counter{windowStart: now}
	}

	c.attempts++
	d := Decision{Limit: l.limit}
	if c.attempts > l.limit {
		d.NextAttemptIn = max(c.windowStart.Add(l.window).Sub(now), 0)
		l.counters.Add(key, c)
		return d
	}

	c.lastAttempt = now
	l.counters.Add(key, c)
	d.Allowed = true
	d.Remaining = l.limit - c.attempts
	return d
}
