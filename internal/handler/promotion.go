package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/promotion"
	"github.com/osse101/SpinHall_Go/internal/session"
)

// HandleListPromotions returns all active promotions
// @Summary List promotions
// @Tags promotions
// @Produce json
// @Success 200 {array} domain.Promotion
// @Router /api/promotions [get]
func HandleListPromotions(svc promotion.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promos, err := svc.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgPromotionsFailed, "error", err)
			respondServiceError(w, err)
			return
		}
		if promos == nil {
			promos = []domain.Promotion{}
		}
		respondJSON(w, http.StatusOK, promos)
	}
}

// HandlePromotionAvailability reports whether a promotion runs today and
// whether the caller may still use it
// @Summary Promotion availability
// @Tags promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} promotion.Availability
// @Failure 404 {object} ErrorResponse
// @Router /api/promotions/{id}/availability [get]
func HandlePromotionAvailability(svc promotion.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingPromotionID)
			return
		}

		var userID string
		if sess := session.FromContext(r.Context()); sess.Authenticated() {
			userID = sess.UserID
		}

		avail, err := svc.Availability(r.Context(), id, userID)
		if err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgAvailabilityFailed, "promotion_id", id, "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, avail)
	}
}
