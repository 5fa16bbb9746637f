package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"booking-backend/internal/domains/discount/model"
)

// DiscountRepository persists discount codes
type DiscountRepository interface {
	// FindAvailableByID returns the discount only while it has remaining
	// uses. Missing and exhausted codes both yield model.ErrDiscountNotFound.
	FindAvailableByID(ctx context.Context, id int64) (*model.Discount, error)

	// DecrementRemainingUses atomically takes one use inside tx and returns
	// what is left. It fails with model.ErrDiscountNotFound when the code is
	// missing or already at zero, so two callers can never both take the
	// last use.
	DecrementRemainingUses(ctx context.Context, tx pgx.Tx, id int64) (int, error)

	// ExhaustExpired zeroes the remaining uses of every discount whose
	// valid_until is before today and reports how many were touched
	ExhaustExpired(ctx context.Context, today time.Time) (int64, error)

	Create(ctx context.Context, d *model.Discount) error
	List(ctx context.Context) ([]model.Discount, error)
}
