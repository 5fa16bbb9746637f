package schedule

import "context"

type Service interface {
	Create(ctx context.Context, req CreateScheduleRequest) (*Schedule, error)
	List(ctx context.Context) ([]Schedule, error)
}
