package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"booking-backend/internal/shared"
)

var (
	moneyPattern   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	counterPattern = regexp.MustCompile(`^\d+$`)
)

const validUntilLayout = "2006-01-02"

// CreateDiscountRequest is the admin payload for a new discount code
type CreateDiscountRequest struct {
	DiscountType      string               `json:"discount_type"`
	DiscountValue     shared.NumericString `json:"discount_value"`
	MaxDiscountAmount shared.NumericString `json:"max_discount_amount"`
	UserLeft          shared.NumericString `json:"user_left"`
	ValidUntil        string               `json:"valid_until"`
}

func (r CreateDiscountRequest) Validate() error {
	discountType, _ := ParseDiscountType(r.DiscountType)

	return validation.ValidateStruct(&r,
		validation.Field(&r.DiscountType,
			validation.Required.Error("The discount type field is required."),
			validation.By(func(value interface{}) error {
				if _, err := ParseDiscountType(value.(string)); err != nil {
					return errors.New("The discount type must be fixed or percentage.")
				}
				return nil
			}),
		),
		validation.Field(&r.DiscountValue,
			validation.Required.Error("The discount value field is required."),
			validation.Match(moneyPattern).Error("The discount value must be a number with at most 2 decimal places."),
		),
		validation.Field(&r.MaxDiscountAmount,
			validation.When(discountType == DiscountTypePercentage,
				validation.Required.Error("The max discount amount field is required when discount type is percentage."),
			),
			validation.Match(moneyPattern).Error("The max discount amount must be a number with at most 2 decimal places."),
		),
		validation.Field(&r.UserLeft,
			validation.Required.Error("The user left field is required."),
			validation.Match(counterPattern).Error("The user left must be a non-negative integer."),
		),
		validation.Field(&r.ValidUntil,
			validation.Required.Error("The valid until field is required."),
			validation.Date(validUntilLayout).Error("The valid until is not a valid date."),
		),
	)
}

// ToDiscount converts a validated request into a Discount
func (r CreateDiscountRequest) ToDiscount() (*Discount, error) {
	discountType, err := ParseDiscountType(r.DiscountType)
	if err != nil {
		return nil, err
	}

	value, err := decimal.NewFromString(r.DiscountValue.String())
	if err != nil {
		return nil, fmt.Errorf("discount_value: %w", err)
	}

	var maxAmount *decimal.Decimal
	if !r.MaxDiscountAmount.IsEmpty() {
		m, err := decimal.NewFromString(r.MaxDiscountAmount.String())
		if err != nil {
			return nil, fmt.Errorf("max_discount_amount: %w", err)
		}
		maxAmount = &m
	}

	remaining, err := r.UserLeft.Int64()
	if err != nil {
		return nil, fmt.Errorf("user_left: %w", err)
	}

	validUntil, err := time.Parse(validUntilLayout, strings.TrimSpace(r.ValidUntil))
	if err != nil {
		return nil, fmt.Errorf("valid_until: %w", err)
	}

	return &Discount{
		DiscountType:      discountType,
		DiscountValue:     value,
		MaxDiscountAmount: maxAmount,
		RemainingUses:     int(remaining),
		ValidUntil:        validUntil,
	}, nil
}

// ApplyDiscountInput is the raw apply-discount request as read from the
// query string and/or the JSON body
type ApplyDiscountInput struct {
	UserID          shared.NumericString `json:"user_id"`
	DiscountID      shared.NumericString `json:"discount_id"`
	Total           shared.NumericString `json:"total"`
	ScheduleIDs     shared.ScheduleIDs   `json:"schedule_id"`
	ForFamilyMember shared.Flag          `json:"for_family_member"`
}

// Merge overlays every field other sets onto i
func (i *ApplyDiscountInput) Merge(other ApplyDiscountInput) {
	if !other.UserID.IsEmpty() {
		i.UserID = other.UserID
	}
	if !other.DiscountID.IsEmpty() {
		i.DiscountID = other.DiscountID
	}
	if !other.Total.IsEmpty() {
		i.Total = other.Total
	}
	if len(other.ScheduleIDs) > 0 {
		i.ScheduleIDs = other.ScheduleIDs
	}
	if other.ForFamilyMember.Set {
		i.ForFamilyMember = other.ForFamilyMember
	}
}

// ToRequest converts the raw input. Missing numbers become zero and are
// rejected later by ApplyDiscountRequest.Validate.
func (i ApplyDiscountInput) ToRequest() (*ApplyDiscountRequest, error) {
	userID, err := i.UserID.Int64()
	if err != nil {
		return nil, fmt.Errorf("user_id: %w", err)
	}

	discountID, err := i.DiscountID.Int64()
	if err != nil {
		return nil, fmt.Errorf("discount_id: %w", err)
	}

	total := decimal.Zero
	if !i.Total.IsEmpty() {
		total, err = decimal.NewFromString(i.Total.String())
		if err != nil {
			return nil, fmt.Errorf("total: %w", err)
		}
	}

	return &ApplyDiscountRequest{
		UserID:          userID,
		DiscountID:      discountID,
		Total:           total,
		ScheduleIDs:     i.ScheduleIDs.Int64s(),
		ForFamilyMember: i.ForFamilyMember.Value,
	}, nil
}

// ApplyDiscountRequest asks for the rebate a discount yields on a booking
type ApplyDiscountRequest struct {
	UserID          int64           `json:"user_id"`
	DiscountID      int64           `json:"discount_id"`
	Total           decimal.Decimal `json:"total"`
	ScheduleIDs     []int64         `json:"schedule_id"`
	ForFamilyMember bool            `json:"for_family_member"`
}

func (r ApplyDiscountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.DiscountID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Total, validation.By(func(value interface{}) error {
			if !value.(decimal.Decimal).IsPositive() {
				return errors.New("must be greater than 0")
			}
			return nil
		})),
		validation.Field(&r.ScheduleIDs, validation.Required, validation.Each(validation.Min(int64(1)))),
	)
}

// ApplyDiscountResult is the outcome of a successful application.
// An ineligible booking is still a result, with a zero Discount.
type ApplyDiscountResult struct {
	DiscountID int64           `json:"discount_id"`
	Eligible   bool            `json:"eligible"`
	Discount   decimal.Decimal `json:"discount"`
}
