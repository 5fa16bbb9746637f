package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"

	"booking-backend/internal/domains/booking/model"
)

type ServiceInterface interface {
	Confirm(ctx context.Context, req *model.ConfirmBookingRequest) (*model.ConfirmBookingResult, error)
}

// DiscountUsage takes one use of a discount inside the booking transaction
type DiscountUsage interface {
	DecrementRemainingUses(ctx context.Context, tx pgx.Tx, id int64) (int, error)
}

// HistoryInvalidator drops cached booking history after a new booking
type HistoryInvalidator interface {
	Invalidate(ctx context.Context, userID int64, forMember bool) error
}

// TaskQueue publishes background work
type TaskQueue interface {
	Enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error
}
