package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"booking-backend/internal/domains/discount/model"
	"booking-backend/internal/domains/discount/repository"
	"booking-backend/pkg/logger"
)

const (
	msgApplyFailed  = "An error occurred while applying the discount."
	msgCreateFailed = "An error occurred while creating the discount."
	msgListFailed   = "An error occurred while loading discounts."
	exportSheetName = "Discounts"
)

type DiscountService struct {
	repo        repository.DiscountRepository
	eligibility *EligibilityEvaluator
	calculator  *Calculator
}

func NewDiscountService(repo repository.DiscountRepository, history BookingHistory) ServiceInterface {
	return &DiscountService{
		repo:        repo,
		eligibility: NewEligibilityEvaluator(history),
		calculator:  NewCalculator(),
	}
}

// ApplyDiscount computes the rebate a discount yields for a booking request.
// The loaded discount is passed explicitly to the evaluator and the
// calculator; nothing is kept on the service between calls.
func (s *DiscountService) ApplyDiscount(ctx context.Context, req *model.ApplyDiscountRequest) (*model.ApplyDiscountResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	discount, err := s.repo.FindAvailableByID(ctx, req.DiscountID)
	if err != nil {
		if errors.Is(err, model.ErrDiscountNotFound) {
			return nil, model.NewDiscountNotFoundError()
		}
		logger.Error("[Discount] Failed to load discount", err)
		return nil, model.NewInternalError(msgApplyFailed, err)
	}

	eligible, err := s.eligibility.IsEligible(ctx, req.UserID, req.ForFamilyMember, req.ScheduleIDs)
	if err != nil {
		logger.Error("[Discount] Failed to evaluate eligibility", err)
		return nil, model.NewInternalError(msgApplyFailed, err)
	}

	result := &model.ApplyDiscountResult{
		DiscountID: discount.ID,
		Eligible:   eligible,
		Discount:   decimal.Zero,
	}
	if eligible {
		result.Discount = s.calculator.Calculate(discount, req.Total)
	}

	logger.Info("[Discount] Applied", map[string]interface{}{
		"user_id":           req.UserID,
		"discount_id":       discount.ID,
		"for_family_member": req.ForFamilyMember,
		"eligible":          eligible,
		"rebate":            result.Discount.String(),
	})

	return result, nil
}

func (s *DiscountService) CreateDiscount(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	discount, err := req.ToDiscount()
	if err != nil {
		return nil, model.NewValidationError(err)
	}

	if err := s.repo.Create(ctx, discount); err != nil {
		logger.Error("[Discount] Failed to create discount", err)
		return nil, model.NewInternalError(msgCreateFailed, err)
	}

	logger.Info("[Discount] Created", map[string]interface{}{
		"discount_id":    discount.ID,
		"discount_type":  discount.DiscountType.String(),
		"remaining_uses": discount.RemainingUses,
	})

	return discount, nil
}

func (s *DiscountService) ListDiscounts(ctx context.Context) ([]model.Discount, error) {
	discounts, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("[Discount] Failed to list discounts", err)
		return nil, model.NewInternalError(msgListFailed, err)
	}
	return discounts, nil
}

// ExportDiscounts writes every discount into a single-sheet workbook
func (s *DiscountService) ExportDiscounts(ctx context.Context) (*excelize.File, error) {
	discounts, err := s.ListDiscounts(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildDiscountsExcelFile(discounts)
	if err != nil {
		return nil, model.NewInternalError(msgListFailed, fmt.Errorf("build discounts workbook: %w", err))
	}

	return f, nil
}

func buildDiscountsExcelFile(discounts []model.Discount) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	headers := []string{
		"ID",
		"Type",
		"Value",
		"Max Discount Amount",
		"Remaining Uses",
		"Valid Until",
		"Created At",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(exportSheetName, "A1", lastHeader, headerStyle)
	}

	for i, d := range discounts {
		row := i + 2

		var maxAmount interface{}
		if d.MaxDiscountAmount != nil {
			maxAmount = d.MaxDiscountAmount.InexactFloat64()
		}

		values := []interface{}{
			d.ID,
			d.DiscountType.String(),
			d.DiscountValue.InexactFloat64(),
			maxAmount,
			d.RemainingUses,
			d.ValidUntil.Format("2006-01-02"),
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
