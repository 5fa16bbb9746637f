package member

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booking-backend/internal/shared"
)

var idPattern = regexp.MustCompile(`^[1-9]\d*$`)

type CreateMemberRequest struct {
	UserID       shared.NumericString `json:"user_id"`
	Name         string               `json:"name"`
	Relationship string               `json:"relationship"`
}

func (r CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.Required.Error("The user id field is required."),
			validation.Match(idPattern).Error("The user id must be a positive integer."),
		),
		validation.Field(&r.Name,
			validation.Required.Error("The name field is required."),
			validation.RuneLength(1, 255).Error("The name may not be greater than 255 characters."),
		),
		validation.Field(&r.Relationship,
			validation.Required.Error("The relationship field is required."),
			validation.RuneLength(1, 255).Error("The relationship may not be greater than 255 characters."),
		),
	)
}

func (r *CreateMemberRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Relationship = strings.TrimSpace(r.Relationship)
}
