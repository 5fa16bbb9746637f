package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"booking-backend/internal/domains/member"
)

const pgForeignKeyViolation = "23503"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) member.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO members (user_id, name, relationship)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, m.UserID, m.Name, m.Relationship).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return member.ErrUserNotFound
		}
		return fmt.Errorf("insert member: %w", err)
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]member.Member, error) {
	query := `
		SELECT id, user_id, name, relationship, created_at, updated_at
		FROM members
		ORDER BY id`

	return r.query(ctx, query)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID int64) ([]member.Member, error) {
	query := `
		SELECT id, user_id, name, relationship, created_at, updated_at
		FROM members
		WHERE user_id = $1
		ORDER BY id`

	return r.query(ctx, query, userID)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]member.Member, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}

	members, err := pgx.CollectRows(rows, pgx.RowToStructByPos[member.Member])
	if err != nil {
		return nil, fmt.Errorf("scan members: %w", err)
	}

	return members, nil
}
