package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booking-backend/internal/domains/schedule"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) schedule.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, s *schedule.Schedule) error {
	query := `
		INSERT INTO schedules (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query, s.Name, s.Description, s.Price).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]schedule.Schedule, error) {
	query := `
		SELECT id, name, description, price, created_at, updated_at
		FROM schedules
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	schedules, err := pgx.CollectRows(rows, pgx.RowToStructByPos[schedule.Schedule])
	if err != nil {
		return nil, fmt.Errorf("scan schedules: %w", err)
	}

	return schedules, nil
}
