package model

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidDiscountType = errors.New("invalid discount type")
	ErrDiscountNotFound    = errors.New("discount not found or exhausted")
)

type ErrorCode string

const (
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"    // 400
	ErrCodeDiscountNotFound ErrorCode = "DISCOUNT_NOT_FOUND" // 404
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"  // 422
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"     // 500
)

// AppError carries the code and HTTP status a handler answers with.
// Err keeps the cause for logs and is never written to the client.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInvalidRequestError(err error) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidRequest,
		Message:    "Missing required parameters.",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewDiscountNotFoundError() *AppError {
	return &AppError{
		Code:       ErrCodeDiscountNotFound,
		Message:    "Invalid or expired discount ID.",
		HTTPStatus: http.StatusNotFound,
		Err:        ErrDiscountNotFound,
	}
}

func NewValidationError(err error) *AppError {
	return &AppError{
		Code:       ErrCodeValidationFailed,
		Message:    "Validation error",
		HTTPStatus: http.StatusUnprocessableEntity,
		Err:        err,
	}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:       ErrCodeInternalError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// AsAppError unwraps err into an *AppError if there is one in the chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
