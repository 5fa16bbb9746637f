package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booking-backend/internal/domains/schedule"
	"booking-backend/internal/shared/response"
	"booking-backend/pkg/logger"
)

type ScheduleHandler struct {
	service schedule.Service
}

func NewScheduleHandler(s schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{service: s}
}

// Create POST /schedule/create-schedule
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req schedule.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	sch, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ValidationError(c, verrs)
			return
		}
		logger.Error("[Schedule] Failed to create schedule", err)
		response.Error(c, http.StatusInternalServerError, "An error occurred while creating the schedule.", nil)
		return
	}

	response.Success(c, http.StatusCreated, "Schedule created successfully", sch)
}

// List GET /schedule/view
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("[Schedule] Failed to list schedules", err)
		response.Error(c, http.StatusInternalServerError, "An error occurred while loading schedules.", nil)
		return
	}

	response.Success(c, http.StatusOK, "Schedules retrieved successfully", schedules)
}
