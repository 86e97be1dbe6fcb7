package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// PromotionRepository implements the promotion repository for PostgreSQL
type PromotionRepository struct {
	db *pgxpool.Pool
}

// NewPromotionRepository creates a new PromotionRepository
func NewPromotionRepository(db *pgxpool.Pool) *PromotionRepository {
	return &PromotionRepository{db: db}
}

const promotionColumns = `promotion_id, name, description, active, timezone, days_of_week, daily_limit, created_at`

func scanPromotion(row pgx.Row) (*domain.Promotion, error) {
	var p domain.Promotion
	var id uuid.UUID
	var days []int32
	if err := row.Scan(&id, &p.Name, &p.Description, &p.Active, &p.Timezone, &days, &p.DailyLimit, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ID = id.String()
	p.DaysOfWeek = make([]int, len(days))
	for i, d := range days {
		p.DaysOfWeek[i] = int(d)
	}
	return &p, nil
}

// ListActivePromotions returns active promotions ordered by name
func (r *PromotionRepository) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPromotions, err)
	}
	defer rows.Close()

	var promos []domain.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPromotions, err)
		}
		promos = append(promos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPromotions, err)
	}
	return promos, nil
}

// GetPromotion finds a promotion by id, active or not
func (r *PromotionRepository) GetPromotion(ctx context.Context, id string) (*domain.Promotion, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrPromotionNotFound
	}

	p, err := scanPromotion(r.db.QueryRow(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE promotion_id = $1`, pid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPromotion, err)
	}
	return p, nil
}
