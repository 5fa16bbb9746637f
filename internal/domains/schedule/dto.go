package schedule

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"booking-backend/internal/shared"
)

var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

type CreateScheduleRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       shared.NumericString `json:"price"`
}

func (r CreateScheduleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("The name field is required."),
			validation.RuneLength(1, 255).Error("The name may not be greater than 255 characters."),
		),
		validation.Field(&r.Price,
			validation.Required.Error("The price field is required."),
			validation.Match(pricePattern).Error("The price must be a number with at most 2 decimal places."),
		),
	)
}

// ToSchedule converts a validated request
func (r CreateScheduleRequest) ToSchedule() (*Schedule, error) {
	price, err := decimal.NewFromString(r.Price.String())
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	return &Schedule{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Price:       price,
	}, nil
}
