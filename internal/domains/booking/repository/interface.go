package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"booking-backend/internal/domains/booking/model"
	"booking-backend/pkg/database"
)

type BookingRepository interface {
	// WithTx runs fn in a transaction; any error rolls everything back
	WithTx(ctx context.Context, fn database.TxFunc) error

	// CreateWithTx inserts the booking and one item per schedule id,
	// filling in ID, BookingDate, CreatedAt and Items
	CreateWithTx(ctx context.Context, tx pgx.Tx, b *model.Booking, scheduleIDs []int64) error

	// PriorScheduleIDs returns which of requested the user already booked
	// in the given scope (for a family member or for themselves)
	PriorScheduleIDs(ctx context.Context, userID int64, forMember bool, requested []int64) ([]int64, error)

	// ScopeScheduleIDs returns every schedule the user booked in the scope
	ScopeScheduleIDs(ctx context.Context, userID int64, forMember bool) ([]int64, error)
}
