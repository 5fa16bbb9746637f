package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-backend/internal/domains/booking/model"
	"booking-backend/internal/domains/booking/service"
	"booking-backend/internal/shared/response"
	"booking-backend/pkg/logger"
)

type BookingHandler struct {
	service service.ServiceInterface
}

func NewBookingHandler(s service.ServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

// Confirm POST /booking/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input model.ConfirmBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Validation error", map[string][]string{
			"request": {err.Error()},
		})
		return
	}

	if err := input.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	req, err := input.ToRequest()
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Booking added successfully", result)
}

func (h *BookingHandler) handleError(c *gin.Context, err error) {
	var bErr *model.BookingError
	if !errors.As(err, &bErr) {
		logger.Error("[Booking] Unexpected error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	if bErr.Code == model.ErrCodeValidationFailed {
		response.ValidationError(c, bErr.Err)
		return
	}

	response.Error(c, bErr.HTTPStatus, bErr.Message, nil)
}
