package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"booking-backend/internal/domains/booking/model"
	"booking-backend/internal/shared/utils"
	"booking-backend/pkg/logger"
)

// HistoryWarmer reloads a user's cached booking history
type HistoryWarmer interface {
	Warm(ctx context.Context, userID int64, forMember bool) error
}

// BookingConfirmedHandler writes the audit line for a confirmed booking and
// re-warms the history cache the confirm invalidated
type BookingConfirmedHandler struct {
	history HistoryWarmer
}

func NewBookingConfirmedHandler(history HistoryWarmer) *BookingConfirmedHandler {
	return &BookingConfirmedHandler{history: history}
}

func (h *BookingConfirmedHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.BookingConfirmedPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	fields := map[string]interface{}{
		"booking_id":   payload.BookingID,
		"user_id":      payload.UserID,
		"for_member":   payload.ForMember,
		"total_amount": payload.TotalAmount,
		"discount":     payload.Discount,
		"schedule_ids": payload.ScheduleIDs,
	}
	if payload.DiscountID != nil {
		fields["discount_id"] = *payload.DiscountID
	}
	logger.Info("[BookingAudit] Booking confirmed", fields)

	if err := h.history.Warm(ctx, payload.UserID, payload.ForMember); err != nil {
		return fmt.Errorf("warm booking history for user %d: %w", payload.UserID, err)
	}

	return nil
}
