package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"booking-backend/internal/domains/discount/model"
)

func percentageDiscount() *model.Discount {
	return &model.Discount{
		ID:                1,
		DiscountType:      model.DiscountTypePercentage,
		DiscountValue:     dec("20"),
		MaxDiscountAmount: decPtr("500"),
		RemainingUses:     10,
	}
}

func fixedDiscount() *model.Discount {
	return &model.Discount{
		ID:            2,
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: dec("100"),
		RemainingUses: 10,
	}
}

func applyRequest(discountID int64, total string, forMember bool) *model.ApplyDiscountRequest {
	return &model.ApplyDiscountRequest{
		UserID:          7,
		DiscountID:      discountID,
		Total:           dec(total),
		ScheduleIDs:     []int64{1, 2},
		ForFamilyMember: forMember,
	}
}

func requireAppError(t *testing.T, err error, code model.ErrorCode, status int) *model.AppError {
	t.Helper()
	appErr, ok := model.AsAppError(err)
	require.True(t, ok, "expected *AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.HTTPStatus)
	return appErr
}

func TestApplyDiscount_Scenarios(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		discount  *model.Discount
		total     string
		forMember bool
		history   []int64
		want      string
		eligible  bool
	}{
		{"percentage under cap", percentageDiscount(), "2000", false, []int64{1}, "400", true},
		{"percentage over cap", percentageDiscount(), "10000", false, []int64{2}, "500", true},
		{"fixed eligible", fixedDiscount(), "3", false, []int64{1, 2}, "100", true},
		{"fixed not eligible", fixedDiscount(), "3", false, nil, "0", false},
		{"family path eligible", fixedDiscount(), "900", true, []int64{2}, "100", true},
		{"no prior bookings", percentageDiscount(), "2000", false, []int64{}, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockDiscountRepo)
			history := new(mockHistory)

			req := applyRequest(tt.discount.ID, tt.total, tt.forMember)
			repo.On("FindAvailableByID", ctx, tt.discount.ID).Return(tt.discount, nil)
			history.On("PriorScheduleIDs", ctx, int64(7), tt.forMember, []int64{1, 2}).Return(tt.history, nil)

			svc := NewDiscountService(repo, history)
			result, err := svc.ApplyDiscount(ctx, req)

			require.NoError(t, err)
			assert.Equal(t, tt.eligible, result.Eligible)
			assert.True(t, result.Discount.Equal(dec(tt.want)), "got %s want %s", result.Discount, tt.want)
			repo.AssertExpectations(t)
			history.AssertExpectations(t)
		})
	}
}

func TestApplyDiscount_ScopeFollowsFlag(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDiscountRepo)
	history := new(mockHistory)

	repo.On("FindAvailableByID", ctx, int64(2)).Return(fixedDiscount(), nil)
	// Only owner bookings exist; a family-member request must not see them.
	history.On("PriorScheduleIDs", ctx, int64(7), true, []int64{1, 2}).Return([]int64{}, nil)

	svc := NewDiscountService(repo, history)
	result, err := svc.ApplyDiscount(ctx, applyRequest(2, "500", true))

	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.True(t, result.Discount.IsZero())
	history.AssertNotCalled(t, "PriorScheduleIDs", ctx, int64(7), false, mock.Anything)
}

func TestApplyDiscount_Exhausted(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDiscountRepo)
	history := new(mockHistory)

	repo.On("FindAvailableByID", ctx, int64(1)).Return(nil, model.ErrDiscountNotFound)

	svc := NewDiscountService(repo, history)
	result, err := svc.ApplyDiscount(ctx, applyRequest(1, "2000", false))

	assert.Nil(t, result)
	appErr := requireAppError(t, err, model.ErrCodeDiscountNotFound, http.StatusNotFound)
	assert.Equal(t, "Invalid or expired discount ID.", appErr.Message)
	history.AssertNotCalled(t, "PriorScheduleIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyDiscount_InvalidRequest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.ApplyDiscountRequest
	}{
		{"missing user", &model.ApplyDiscountRequest{DiscountID: 1, Total: dec("10"), ScheduleIDs: []int64{1}}},
		{"missing discount", &model.ApplyDiscountRequest{UserID: 1, Total: dec("10"), ScheduleIDs: []int64{1}}},
		{"zero total", &model.ApplyDiscountRequest{UserID: 1, DiscountID: 1, Total: decimal.Zero, ScheduleIDs: []int64{1}}},
		{"negative total", &model.ApplyDiscountRequest{UserID: 1, DiscountID: 1, Total: dec("-5"), ScheduleIDs: []int64{1}}},
		{"no schedules", &model.ApplyDiscountRequest{UserID: 1, DiscountID: 1, Total: dec("10")}},
		{"negative user", &model.ApplyDiscountRequest{UserID: -3, DiscountID: 1, Total: dec("10"), ScheduleIDs: []int64{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockDiscountRepo)
			history := new(mockHistory)

			svc := NewDiscountService(repo, history)
			_, err := svc.ApplyDiscount(ctx, tt.req)

			appErr := requireAppError(t, err, model.ErrCodeInvalidRequest, http.StatusBadRequest)
			assert.Equal(t, "Missing required parameters.", appErr.Message)
			repo.AssertNotCalled(t, "FindAvailableByID", mock.Anything, mock.Anything)
		})
	}
}

func TestApplyDiscount_StorageFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("discount lookup", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		history := new(mockHistory)
		repo.On("FindAvailableByID", ctx, int64(1)).Return(nil, errors.New("connection refused"))

		_, err := NewDiscountService(repo, history).ApplyDiscount(ctx, applyRequest(1, "2000", false))

		appErr := requireAppError(t, err, model.ErrCodeInternalError, http.StatusInternalServerError)
		assert.Equal(t, "An error occurred while applying the discount.", appErr.Message)
		assert.NotContains(t, appErr.Message, "connection refused")
	})

	t.Run("history lookup", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		history := new(mockHistory)
		repo.On("FindAvailableByID", ctx, int64(1)).Return(percentageDiscount(), nil)
		history.On("PriorScheduleIDs", ctx, int64(7), false, []int64{1, 2}).Return(nil, errors.New("timeout"))

		_, err := NewDiscountService(repo, history).ApplyDiscount(ctx, applyRequest(1, "2000", false))

		requireAppError(t, err, model.ErrCodeInternalError, http.StatusInternalServerError)
	})
}

func TestCreateDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		repo.On("Create", ctx, mock.MatchedBy(func(d *model.Discount) bool {
			return d.DiscountType == model.DiscountTypePercentage &&
				d.DiscountValue.Equal(dec("20")) &&
				d.MaxDiscountAmount != nil && d.MaxDiscountAmount.Equal(dec("500")) &&
				d.RemainingUses == 10
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Discount).ID = 42
		}).Return(nil)

		svc := NewDiscountService(repo, new(mockHistory))
		d, err := svc.CreateDiscount(ctx, &model.CreateDiscountRequest{
			DiscountType:      "Percentage",
			DiscountValue:     "20",
			MaxDiscountAmount: "500.00",
			UserLeft:          "10",
			ValidUntil:        "2030-12-31",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(42), d.ID)
		assert.Equal(t, 2030, d.ValidUntil.Year())
		repo.AssertExpectations(t)
	})

	t.Run("field errors", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewDiscountService(repo, new(mockHistory))

		_, err := svc.CreateDiscount(ctx, &model.CreateDiscountRequest{
			DiscountType:      "bogus",
			DiscountValue:     "20.123",
			MaxDiscountAmount: "abc",
			UserLeft:          "",
			ValidUntil:        "31/12/2030",
		})

		appErr := requireAppError(t, err, model.ErrCodeValidationFailed, http.StatusUnprocessableEntity)
		var fields interface{ Filter() error }
		require.ErrorAs(t, appErr.Err, &fields)
		msg := appErr.Err.Error()
		for _, field := range []string{"discount_type", "discount_value", "max_discount_amount", "user_left", "valid_until"} {
			assert.Contains(t, msg, field)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestExportDiscounts(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDiscountRepo)
	repo.On("List", ctx).Return([]model.Discount{*percentageDiscount(), *fixedDiscount()}, nil)

	f, err := NewDiscountService(repo, new(mockHistory)).ExportDiscounts(ctx)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(exportSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	typ, err := f.GetCellValue(exportSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "percentage", typ)

	maxAmount, err := f.GetCellValue(exportSheetName, "D3")
	require.NoError(t, err)
	assert.Empty(t, maxAmount)
}
