package service

import (
	"github.com/shopspring/decimal"

	"booking-backend/internal/domains/discount/model"
)

var hundred = decimal.NewFromInt(100)

// Calculator turns a discount and a booking total into a rebate
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate returns the rebate for total.
//
//   - Fixed: the discount value, whatever the total.
//   - Percentage: total * value / 100, rounded half away from zero to a
//     whole unit. When that exceeds the cap the cap is returned as stored,
//     without rounding. A missing cap means no cap.
func (c *Calculator) Calculate(d *model.Discount, total decimal.Decimal) decimal.Decimal {
	switch d.DiscountType {
	case model.DiscountTypeFixed:
		return d.DiscountValue

	case model.DiscountTypePercentage:
		raw := total.Mul(d.DiscountValue).Div(hundred)

		if d.MaxDiscountAmount == nil || raw.LessThanOrEqual(*d.MaxDiscountAmount) {
			return raw.Round(0)
		}
		return *d.MaxDiscountAmount

	default:
		return decimal.Zero
	}
}
