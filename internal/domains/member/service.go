package member

import "context"

type Service interface {
	Create(ctx context.Context, req CreateMemberRequest) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	ListByUser(ctx context.Context, userID int64) ([]Member, error)
}
