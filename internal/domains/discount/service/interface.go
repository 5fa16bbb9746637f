package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"booking-backend/internal/domains/discount/model"
)

type ServiceInterface interface {
	ApplyDiscount(ctx context.Context, req *model.ApplyDiscountRequest) (*model.ApplyDiscountResult, error)
	CreateDiscount(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error)
	ListDiscounts(ctx context.Context) ([]model.Discount, error)
	ExportDiscounts(ctx context.Context) (*excelize.File, error)
}
