package service

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"booking-backend/internal/domains/booking/model"
	"booking-backend/internal/domains/booking/repository"
	discountModel "booking-backend/internal/domains/discount/model"
	"booking-backend/internal/shared"
	"booking-backend/pkg/logger"
)

// pgForeignKeyViolation is the SQLSTATE for a missing user or schedule
const pgForeignKeyViolation = "23503"

const defaultEnqueueTimeout = 2 * time.Second

type Options struct {
	// DecrementOnlyWithRebate keeps the discount use when the booking
	// carries a zero rebate
	DecrementOnlyWithRebate bool

	// EnqueueTimeout bounds the booking-confirmed enqueue after commit
	EnqueueTimeout time.Duration
}

type BookingService struct {
	repo      repository.BookingRepository
	discounts DiscountUsage
	history   HistoryInvalidator
	queue     TaskQueue
	opts      Options
}

func NewBookingService(
	repo repository.BookingRepository,
	discounts DiscountUsage,
	history HistoryInvalidator,
	queue TaskQueue,
	opts Options,
) ServiceInterface {
	if opts.EnqueueTimeout <= 0 {
		opts.EnqueueTimeout = defaultEnqueueTimeout
	}

	return &BookingService{
		repo:      repo,
		discounts: discounts,
		history:   history,
		queue:     queue,
		opts:      opts,
	}
}

// Confirm stores the booking with its items and takes one use of the
// referenced discount in the same transaction. If the discount has no use
// left the whole booking is rolled back.
func (s *BookingService) Confirm(ctx context.Context, req *model.ConfirmBookingRequest) (*model.ConfirmBookingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	booking := &model.Booking{
		UserID:      req.UserID,
		TotalAmount: req.TotalAmount,
		Discount:    req.Discount,
		ForMember:   req.ForFamilyMember,
	}
	result := &model.ConfirmBookingResult{Booking: booking}

	err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.CreateWithTx(ctx, tx, booking, req.ScheduleIDs); err != nil {
			return err
		}

		if !s.shouldDecrement(req) {
			return nil
		}

		remaining, err := s.discounts.DecrementRemainingUses(ctx, tx, *req.DiscountID)
		if err != nil {
			return err
		}
		result.RemainingUses = &remaining
		return nil
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	logger.Info("[Booking] Confirmed", map[string]interface{}{
		"booking_id":     booking.ID,
		"user_id":        booking.UserID,
		"for_member":     booking.ForMember,
		"discount":       booking.Discount.String(),
		"schedule_count": len(booking.Items),
	})

	s.afterCommit(ctx, req, booking)

	return result, nil
}

func (s *BookingService) shouldDecrement(req *model.ConfirmBookingRequest) bool {
	if req.DiscountID == nil {
		return false
	}
	if s.opts.DecrementOnlyWithRebate && !req.Discount.IsPositive() {
		return false
	}
	return true
}

func (s *BookingService) mapError(err error) error {
	if errors.Is(err, discountModel.ErrDiscountNotFound) {
		return model.NewDiscountUnavailableError()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return model.NewUnknownReferenceError(err)
	}

	logger.Error("[Booking] Failed to confirm booking", err)
	return model.NewInternalError(err)
}

// afterCommit runs best-effort follow-ups; failures are logged only
func (s *BookingService) afterCommit(ctx context.Context, req *model.ConfirmBookingRequest, booking *model.Booking) {
	if s.history != nil {
		if err := s.history.Invalidate(ctx, booking.UserID, booking.ForMember); err != nil {
			logger.Error("[Booking] Failed to invalidate booking history cache", err)
		}
	}

	if s.queue == nil {
		return
	}

	payload := model.BookingConfirmedPayload{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ForMember:   booking.ForMember,
		DiscountID:  req.DiscountID,
		Discount:    booking.Discount.String(),
		TotalAmount: booking.TotalAmount.String(),
		ScheduleIDs: booking.ScheduleIDs(),
	}

	enqueueCtx, cancel := context.WithTimeout(ctx, s.opts.EnqueueTimeout)
	defer cancel()

	if err := s.queue.Enqueue(enqueueCtx, shared.TypeBookingConfirmed, payload,
		asynq.Queue(shared.QueueBooking),
		asynq.MaxRetry(3),
	); err != nil {
		logger.Error("[Booking] Failed to enqueue booking confirmed task", err)
	}
}
