package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"booking-backend/internal/domains/booking/model"
	"booking-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) BookingRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) WithTx(ctx context.Context, fn database.TxFunc) error {
	return database.WithTransaction(ctx, r.pool, fn)
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, b *model.Booking, scheduleIDs []int64) error {
	query := `
		INSERT INTO bookings (user_id, total_amount, discount, for_member)
		VALUES ($1, $2, $3, $4)
		RETURNING id, booking_date, created_at`

	err := tx.QueryRow(ctx, query,
		b.UserID,
		b.TotalAmount,
		b.Discount,
		b.ForMember,
	).Scan(&b.ID, &b.BookingDate, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO booking_items (booking_id, schedule_id)
		VALUES ($1, $2)
		RETURNING id`

	for _, scheduleID := range scheduleIDs {
		batch.Queue(itemQuery, b.ID, scheduleID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	b.Items = make([]model.BookingItem, 0, len(scheduleIDs))
	for i, scheduleID := range scheduleIDs {
		item := model.BookingItem{BookingID: b.ID, ScheduleID: scheduleID}
		if err := results.QueryRow().Scan(&item.ID); err != nil {
			return fmt.Errorf("insert booking item %d: %w", i, err)
		}
		b.Items = append(b.Items, item)
	}

	return nil
}

func (r *postgresRepository) PriorScheduleIDs(ctx context.Context, userID int64, forMember bool, requested []int64) ([]int64, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	query := `
		SELECT DISTINCT bi.schedule_id
		FROM bookings b
		JOIN booking_items bi ON bi.booking_id = b.id
		WHERE b.user_id = $1
		  AND b.for_member = $2
		  AND bi.schedule_id = ANY($3)
		ORDER BY bi.schedule_id`

	return r.collectIDs(ctx, query, userID, forMember, pq.Array(requested))
}

func (r *postgresRepository) ScopeScheduleIDs(ctx context.Context, userID int64, forMember bool) ([]int64, error) {
	query := `
		SELECT DISTINCT bi.schedule_id
		FROM bookings b
		JOIN booking_items bi ON bi.booking_id = b.id
		WHERE b.user_id = $1
		  AND b.for_member = $2
		ORDER BY bi.schedule_id`

	return r.collectIDs(ctx, query, userID, forMember)
}

func (r *postgresRepository) collectIDs(ctx context.Context, query string, args ...interface{}) ([]int64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query booking history: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan booking history: %w", err)
	}

	return ids, nil
}
