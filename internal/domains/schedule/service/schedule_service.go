package service

import (
	"context"

	"booking-backend/internal/domains/schedule"
	"booking-backend/pkg/logger"
)

type scheduleService struct {
	repo schedule.Repository
}

func NewScheduleService(repo schedule.Repository) schedule.Service {
	return &scheduleService{repo: repo}
}

func (s *scheduleService) Create(ctx context.Context, req schedule.CreateScheduleRequest) (*schedule.Schedule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sch, err := req.ToSchedule()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sch); err != nil {
		return nil, err
	}

	logger.Info("[Schedule] Created", map[string]interface{}{
		"schedule_id": sch.ID,
		"price":       sch.Price.String(),
	})
	return sch, nil
}

func (s *scheduleService) List(ctx context.Context) ([]schedule.Schedule, error) {
	return s.repo.List(ctx)
}
