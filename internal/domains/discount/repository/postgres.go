package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booking-backend/internal/domains/discount/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) DiscountRepository {
	return &postgresRepository{pool: pool}
}

const discountColumns = `
	id, discount_type, discount_value, max_discount_amount,
	remaining_uses, valid_until, created_at, updated_at`

func scanDiscount(row pgx.Row, d *model.Discount) error {
	return row.Scan(
		&d.ID,
		&d.DiscountType,
		&d.DiscountValue,
		&d.MaxDiscountAmount,
		&d.RemainingUses,
		&d.ValidUntil,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func (r *postgresRepository) FindAvailableByID(ctx context.Context, id int64) (*model.Discount, error) {
	query := `SELECT` + discountColumns + `
		FROM discounts
		WHERE id = $1 AND remaining_uses > 0`

	var d model.Discount
	if err := scanDiscount(r.pool.QueryRow(ctx, query, id), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("find available discount %d: %w", id, err)
	}

	return &d, nil
}

func (r *postgresRepository) DecrementRemainingUses(ctx context.Context, tx pgx.Tx, id int64) (int, error) {
	query := `
		UPDATE discounts
		SET remaining_uses = remaining_uses - 1,
		    updated_at = NOW()
		WHERE id = $1 AND remaining_uses > 0
		RETURNING remaining_uses`

	var remaining int
	if err := tx.QueryRow(ctx, query, id).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrDiscountNotFound
		}
		return 0, fmt.Errorf("decrement discount %d: %w", id, err)
	}

	return remaining, nil
}

func (r *postgresRepository) ExhaustExpired(ctx context.Context, today time.Time) (int64, error) {
	query := `
		UPDATE discounts
		SET remaining_uses = 0,
		    updated_at = NOW()
		WHERE valid_until < $1::date AND remaining_uses > 0`

	tag, err := r.pool.Exec(ctx, query, today.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("exhaust expired discounts: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) Create(ctx context.Context, d *model.Discount) error {
	query := `
		INSERT INTO discounts (
			discount_type, discount_value, max_discount_amount,
			remaining_uses, valid_until
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		d.DiscountType,
		d.DiscountValue,
		d.MaxDiscountAmount,
		d.RemainingUses,
		d.ValidUntil,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert discount: %w", err)
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Discount, error) {
	query := `SELECT` + discountColumns + `
		FROM discounts
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()

	discounts := make([]model.Discount, 0)
	for rows.Next() {
		var d model.Discount
		if err := scanDiscount(rows, &d); err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		discounts = append(discounts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discounts: %w", err)
	}

	return discounts, nil
}
