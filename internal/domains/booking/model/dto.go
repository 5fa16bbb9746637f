package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"booking-backend/internal/shared"
)

// ConfirmBookingInput is the raw confirm payload
type ConfirmBookingInput struct {
	UserID          shared.NumericString `json:"user_id"`
	TotalAmount     shared.NumericString `json:"total_amount"`
	Discount        shared.NumericString `json:"discount"`
	DiscountID      shared.NumericString `json:"discount_id"`
	ForFamilyMember shared.Flag          `json:"for_family_member"`
	ScheduleIDs     shared.ScheduleIDs   `json:"schedule_id"`
}

func (i ConfirmBookingInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID,
			validation.Required.Error("The user id field is required."),
			validation.Match(counterPattern).Error("The user id must be an integer."),
		),
		validation.Field(&i.TotalAmount,
			validation.Required.Error("The total amount field is required."),
			validation.Match(moneyPattern).Error("The total amount must be a number with at most 2 decimal places."),
		),
		validation.Field(&i.Discount,
			validation.Match(moneyPattern).Error("The discount must be a number with at most 2 decimal places."),
		),
		validation.Field(&i.DiscountID,
			validation.Match(counterPattern).Error("The discount id must be an integer."),
		),
		validation.Field(&i.ScheduleIDs,
			validation.Required.Error("The schedule id field is required."),
			validation.Each(validation.Min(int64(1)).Error("The schedule id must reference a schedule.")),
		),
	)
}

// ToRequest converts a validated input
func (i ConfirmBookingInput) ToRequest() (*ConfirmBookingRequest, error) {
	userID, err := i.UserID.Int64()
	if err != nil {
		return nil, fmt.Errorf("user_id: %w", err)
	}

	total, err := decimal.NewFromString(i.TotalAmount.String())
	if err != nil {
		return nil, fmt.Errorf("total_amount: %w", err)
	}

	discount := decimal.Zero
	if !i.Discount.IsEmpty() {
		if discount, err = decimal.NewFromString(i.Discount.String()); err != nil {
			return nil, fmt.Errorf("discount: %w", err)
		}
	}

	req := &ConfirmBookingRequest{
		UserID:          userID,
		TotalAmount:     total,
		Discount:        discount,
		ForFamilyMember: i.ForFamilyMember.Value,
		ScheduleIDs:     i.ScheduleIDs.Int64s(),
	}

	if !i.DiscountID.IsEmpty() {
		id, err := i.DiscountID.Int64()
		if err != nil {
			return nil, fmt.Errorf("discount_id: %w", err)
		}
		if id > 0 {
			req.DiscountID = &id
		}
	}

	return req, nil
}

// ConfirmBookingRequest finalizes a booking and takes one use of the
// referenced discount
type ConfirmBookingRequest struct {
	UserID          int64           `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Discount        decimal.Decimal `json:"discount"`
	DiscountID      *int64          `json:"discount_id,omitempty"`
	ForFamilyMember bool            `json:"for_family_member"`
	ScheduleIDs     []int64         `json:"schedule_id"`
}

func (r ConfirmBookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.TotalAmount, validation.By(func(value interface{}) error {
			if value.(decimal.Decimal).IsNegative() {
				return errors.New("must not be negative")
			}
			return nil
		})),
		validation.Field(&r.Discount, validation.By(func(value interface{}) error {
			d := value.(decimal.Decimal)
			if d.IsNegative() {
				return errors.New("must not be negative")
			}
			if d.GreaterThan(r.TotalAmount) {
				return errors.New("must not exceed the total amount")
			}
			return nil
		})),
		validation.Field(&r.ScheduleIDs, validation.Required, validation.Each(validation.Min(int64(1)))),
	)
}

// ConfirmBookingResult is returned by a successful confirm
type ConfirmBookingResult struct {
	Booking *Booking `json:"booking"`
	// RemainingUses is what the discount has left, nil when no use was taken
	RemainingUses *int `json:"remaining_uses,omitempty"`
}
