package model

import (
	"errors"
	"net/http"
)

var (
	ErrDiscountUnavailable = errors.New("discount is missing or has no remaining uses")
	ErrUnknownReference    = errors.New("user or schedule does not exist")
)

type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"  // 422
	ErrCodeDiscountUnavailable ErrorCode = "DISCOUNT_NOT_FOUND" // 404
	ErrCodeUnknownReference    ErrorCode = "UNKNOWN_REFERENCE"  // 422
	ErrCodeInternalError       ErrorCode = "INTERNAL_ERROR"     // 500
)

type BookingError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Err        error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func NewValidationError(err error) *BookingError {
	return &BookingError{
		Code:       ErrCodeValidationFailed,
		Message:    "Validation error",
		HTTPStatus: http.StatusUnprocessableEntity,
		Err:        err,
	}
}

func NewDiscountUnavailableError() *BookingError {
	return &BookingError{
		Code:       ErrCodeDiscountUnavailable,
		Message:    "Invalid or expired discount ID.",
		HTTPStatus: http.StatusNotFound,
		Err:        ErrDiscountUnavailable,
	}
}

func NewUnknownReferenceError(err error) *BookingError {
	return &BookingError{
		Code:       ErrCodeUnknownReference,
		Message:    "The user or one of the schedules does not exist.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Err:        err,
	}
}

func NewInternalError(err error) *BookingError {
	return &BookingError{
		Code:       ErrCodeInternalError,
		Message:    "An error occurred while confirming the booking.",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
