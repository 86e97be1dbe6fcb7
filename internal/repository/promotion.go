package repository

import (
	"context"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// Promotion defines the interface for promotion reads
type Promotion interface {
	ListActivePromotions(ctx context.Context) ([]domain.Promotion, error)
	GetPromotion(ctx context.Context, id string) (*domain.Promotion, error)
}
