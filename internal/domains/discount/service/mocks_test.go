package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"booking-backend/internal/domains/discount/model"
)

type mockDiscountRepo struct {
	mock.Mock
}

func (m *mockDiscountRepo) FindAvailableByID(ctx context.Context, id int64) (*model.Discount, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*model.Discount); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDiscountRepo) DecrementRemainingUses(ctx context.Context, tx pgx.Tx, id int64) (int, error) {
	args := m.Called(ctx, tx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockDiscountRepo) ExhaustExpired(ctx context.Context, today time.Time) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDiscountRepo) Create(ctx context.Context, d *model.Discount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDiscountRepo) List(ctx context.Context) ([]model.Discount, error) {
	args := m.Called(ctx)
	if ds, ok := args.Get(0).([]model.Discount); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) PriorScheduleIDs(ctx context.Context, userID int64, forMember bool, requested []int64) ([]int64, error) {
	args := m.Called(ctx, userID, forMember, requested)
	if ids, ok := args.Get(0).([]int64); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}
