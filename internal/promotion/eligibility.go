package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// IsAvailableToday reports whether p runs on now's weekday in p's timezone.
// Inactive promotions are never available. An unknown timezone fails open.
func IsAvailableToday(p *domain.Promotion, now time.Time) bool {
	if p == nil || !p.Active {
		return false
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		logger.Error(LogMsgTimezoneFailed,
			"promotion_id", p.ID,
			"timezone", p.Timezone,
			"error", err)
		return true
	}

	return p.HasWeekday(now.In(loc).Weekday())
}

// UsageCounter reports how many times a user used a promotion on a day
type UsageCounter interface {
	DailyUsage(ctx context.Context, userID, promotionID string, day time.Time) (int, error)
}

// StubUsageCounter always reports zero usage. Promotion redemptions are
// not recorded anywhere yet, so daily limits never bind.
type StubUsageCounter struct{}

// DailyUsage always returns 0
func (StubUsageCounter) DailyUsage(context.Context, string, string, time.Time) (int, error) {
	return 0, nil
}

// CanUserUse reports whether userID may use p at now: the promotion must
// be available today and the user must be under its daily limit.
// A DailyLimit of 0 means unlimited.
func CanUserUse(ctx context.Context, usage UsageCounter, userID string, p *domain.Promotion, now time.Time) (bool, error) {
	if !IsAvailableToday(p, now) {
		return false, nil
	}
	if p.DailyLimit <= 0 {
		return true, nil
	}

	used, err := usage.DailyUsage(ctx, userID, p.ID, now)
	if err != nil {
		return false, fmt.Errorf("failed to read promotion usage: %w", err)
	}
	return used < p.DailyLimit, nil
}
