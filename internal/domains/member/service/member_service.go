package service

import (
	"context"
	"fmt"

	"booking-backend/internal/domains/member"
	"booking-backend/pkg/logger"
)

type memberService struct {
	repo member.Repository
}

func NewMemberService(repo member.Repository) member.Service {
	return &memberService{repo: repo}
}

func (s *memberService) Create(ctx context.Context, req member.CreateMemberRequest) (*member.Member, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := req.UserID.Int64()
	if err != nil {
		return nil, fmt.Errorf("user_id: %w", err)
	}

	m := &member.Member{
		UserID:       userID,
		Name:         req.Name,
		Relationship: req.Relationship,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("[Member] Created", map[string]interface{}{
		"member_id": m.ID,
		"user_id":   m.UserID,
	})
	return m, nil
}

func (s *memberService) List(ctx context.Context) ([]member.Member, error) {
	return s.repo.List(ctx)
}

func (s *memberService) ListByUser(ctx context.Context, userID int64) ([]member.Member, error) {
	return s.repo.ListByUser(ctx, userID)
}
