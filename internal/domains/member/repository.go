package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) error
	List(ctx context.Context) ([]Member, error)
	ListByUser(ctx context.Context, userID int64) ([]Member, error)
}
