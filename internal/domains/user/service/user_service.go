package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	user "booking-backend/internal/domains/user"
	"booking-backend/pkg/logger"
)

type userService struct {
	repo       user.Repository
	bcryptCost int
}

func NewUserService(repo user.Repository) user.Service {
	return &userService{repo: repo, bcryptCost: bcrypt.DefaultCost}
}

// Create stores a new account; only the bcrypt hash of the password is kept
func (s *userService) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("[User] Created", map[string]interface{}{"user_id": u.ID})
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]user.User, error) {
	return s.repo.List(ctx)
}
