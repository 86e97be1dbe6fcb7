package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/repository"
)

// Availability is the eligibility of one promotion for one caller
type Availability struct {
	PromotionID string `json:"promotionId"`
	Available   bool   `json:"available"`
	CanUse      bool   `json:"canUse"`
}

// Service exposes promotion listing and eligibility
type Service interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	Availability(ctx context.Context, promotionID, userID string) (*Availability, error)
}

type service struct {
	repo  repository.Promotion
	usage UsageCounter
	now   func() time.Time
}

// NewService creates a promotion service. A nil usage counter falls back
// to StubUsageCounter.
func NewService(repo repository.Promotion, usage UsageCounter) Service {
	if usage == nil {
		usage = StubUsageCounter{}
	}
	return &service{
		repo:  repo,
		usage: usage,
		now:   time.Now,
	}
}

// List returns all active promotions
func (s *service) List(ctx context.Context) ([]domain.Promotion, error) {
	promos, err := s.repo.ListActivePromotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	logger.FromContext(ctx).Debug(LogMsgListed, "count", len(promos))
	return promos, nil
}

// Availability checks whether the promotion runs today and, for a known
// user, whether they are still under the daily limit. Anonymous callers
// get CanUse false.
func (s *service) Availability(ctx context.Context, promotionID, userID string) (*Availability, error) {
	p, err := s.repo.GetPromotion(ctx, promotionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	now := s.now()
	result := &Availability{
		PromotionID: p.ID,
		Available:   IsAvailableToday(p, now),
	}
	if userID == "" || !result.Available {
		return result, nil
	}

	canUse, err := CanUserUse(ctx, s.usage, userID, p, now)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUsageFailed, "promotion_id", p.ID, "error", err)
		return result, nil
	}
	result.CanUse = canUse
	return result, nil
}
