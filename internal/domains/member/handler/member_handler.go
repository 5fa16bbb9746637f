package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booking-backend/internal/domains/member"
	"booking-backend/internal/shared/response"
	"booking-backend/pkg/logger"
)

type MemberHandler struct {
	service member.Service
}

func NewMemberHandler(s member.Service) *MemberHandler {
	return &MemberHandler{service: s}
}

// Create POST /member/create-member
func (h *MemberHandler) Create(c *gin.Context) {
	var req member.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			response.ValidationError(c, verrs)
		case errors.Is(err, member.ErrUserNotFound):
			response.ValidationError(c, validation.Errors{
				"user_id": errors.New("The selected user id is invalid."),
			})
		default:
			logger.Error("[Member] Failed to create member", err)
			response.Error(c, http.StatusInternalServerError, "An error occurred while creating the member.", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, "Member created successfully", m)
}

// List GET /member/view
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("[Member] Failed to list members", err)
		response.Error(c, http.StatusInternalServerError, "An error occurred while loading members.", nil)
		return
	}

	response.Success(c, http.StatusOK, "Members retrieved successfully", members)
}

// ListByUser GET /member/view/:id where id is the owning user
func (h *MemberHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid user ID.", nil)
		return
	}

	members, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("[Member] Failed to list members by user", err)
		response.Error(c, http.StatusInternalServerError, "An error occurred while loading members.", nil)
		return
	}

	response.Success(c, http.StatusOK, "Member found successfully", members)
}
