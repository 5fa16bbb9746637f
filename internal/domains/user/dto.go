package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("The name field is required."),
			validation.RuneLength(1, 255).Error("The name may not be greater than 255 characters."),
		),
		validation.Field(&r.Email,
			validation.Required.Error("The email field is required."),
			is.EmailFormat.Error("The email must be a valid email address."),
		),
		validation.Field(&r.Password,
			validation.Required.Error("The password field is required."),
			validation.RuneLength(8, 72).Error("The password must be between 8 and 72 characters."),
		),
	)
}

// Normalize trims input and lowercases the email
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
