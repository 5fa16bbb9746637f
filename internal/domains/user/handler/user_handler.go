package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	user "booking-backend/internal/domains/user"
	"booking-backend/internal/shared/response"
	"booking-backend/pkg/logger"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(s user.Service) *UserHandler {
	return &UserHandler{service: s}
}

// Create POST /user/create-user
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			response.ValidationError(c, verrs)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.ValidationError(c, validation.Errors{
				"email": errors.New("The email has already been taken."),
			})
		default:
			logger.Error("[User] Failed to create user", err)
			response.Error(c, http.StatusInternalServerError, "An error occurred while creating the user.", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", u)
}

// List GET /user/view
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("[User] Failed to list users", err)
		response.Error(c, http.StatusInternalServerError, "An error occurred while loading users.", nil)
		return
	}

	response.Success(c, http.StatusOK, "Users retrieved successfully", users)
}
