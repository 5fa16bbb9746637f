package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"booking-backend/internal/domains/discount/model"
	"booking-backend/internal/domains/discount/service"
	"booking-backend/internal/shared"
	"booking-backend/internal/shared/response"
	"booking-backend/pkg/logger"
)

const (
	msgApplied   = "Discount apply successfully"
	msgCreated   = "Discount created successfully"
	msgListed    = "Discounts retrieved successfully"
	msgApplyFail = "An error occurred while applying the discount."
)

type DiscountHandler struct {
	service service.ServiceInterface
}

func NewDiscountHandler(s service.ServiceInterface) *DiscountHandler {
	return &DiscountHandler{service: s}
}

// applyResponse is the apply-discount envelope. Discount is always present
// and always numeric, 0 on failure.
type applyResponse struct {
	Status   bool        `json:"status"`
	Message  string      `json:"message"`
	Discount json.Number `json:"discount"`
}

// ApplyDiscount GET /discount/apply-discount
//
// Parameters come from the query string, a JSON body, or both; body fields
// win. schedule_id may be a list or a JSON-encoded list.
func (h *DiscountHandler) ApplyDiscount(c *gin.Context) {
	input, err := bindApplyInput(c)
	if err != nil {
		h.applyError(c, model.NewInvalidRequestError(err))
		return
	}

	req, err := input.ToRequest()
	if err != nil {
		h.applyError(c, model.NewInvalidRequestError(err))
		return
	}

	result, err := h.service.ApplyDiscount(c.Request.Context(), req)
	if err != nil {
		h.applyError(c, err)
		return
	}

	c.JSON(http.StatusOK, applyResponse{
		Status:   true,
		Message:  msgApplied,
		Discount: amount(result.Discount),
	})
}

func bindApplyInput(c *gin.Context) (model.ApplyDiscountInput, error) {
	input := model.ApplyDiscountInput{
		UserID:     shared.NumericString(strings.TrimSpace(c.Query("user_id"))),
		DiscountID: shared.NumericString(strings.TrimSpace(c.Query("discount_id"))),
		Total:      shared.NumericString(strings.TrimSpace(c.Query("total"))),
	}

	raw := append(c.QueryArray("schedule_id"), c.QueryArray("schedule_id[]")...)
	ids, err := shared.ParseScheduleIDs(raw)
	if err != nil {
		return input, err
	}
	input.ScheduleIDs = ids

	if err := input.ForFamilyMember.Parse(c.Query("for_family_member")); err != nil {
		return input, err
	}

	if hasJSONBody(c) {
		var body model.ApplyDiscountInput
		if err := c.ShouldBindJSON(&body); err != nil {
			return input, fmt.Errorf("decode body: %w", err)
		}
		input.Merge(body)
	}

	return input, nil
}

func hasJSONBody(c *gin.Context) bool {
	return c.Request.Body != nil &&
		c.Request.ContentLength != 0 &&
		strings.Contains(c.ContentType(), "json")
}

func (h *DiscountHandler) applyError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, msgApplyFail

	if appErr, ok := model.AsAppError(err); ok {
		status, message = appErr.HTTPStatus, appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("[Discount] Apply failed", err)
	}

	c.JSON(status, applyResponse{
		Status:   false,
		Message:  message,
		Discount: "0",
	})
}

// CreateDiscount POST /discount/create-discount
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var req model.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Validation error", map[string][]string{
			"request": {"The request body must be a valid JSON object."},
		})
		return
	}

	discount, err := h.service.CreateDiscount(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msgCreated, discount)
}

// ListDiscounts GET /discount/view
func (h *DiscountHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.service.ListDiscounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgListed, discounts)
}

// ExportDiscounts GET /discount/export streams an xlsx workbook
func (h *DiscountHandler) ExportDiscounts(c *gin.Context) {
	f, err := h.service.ExportDiscounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("[Discount] Failed to close workbook", err)
		}
	}()

	filename := fmt.Sprintf("discounts_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if _, err := f.WriteTo(c.Writer); err != nil {
		logger.Error("[Discount] Failed to write workbook", err)
	}
}

func (h *DiscountHandler) handleError(c *gin.Context, err error) {
	appErr, ok := model.AsAppError(err)
	if !ok {
		logger.Error("[Discount] Unexpected error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	if appErr.Code == model.ErrCodeValidationFailed {
		response.ValidationError(c, appErr.Err)
		return
	}

	response.Error(c, appErr.HTTPStatus, appErr.Message, nil)
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
