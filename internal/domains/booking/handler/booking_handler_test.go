package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"booking-backend/internal/domains/booking/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Confirm(ctx context.Context, req *model.ConfirmBookingRequest) (*model.ConfirmBookingResult, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*model.ConfirmBookingResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func doConfirm(svc *mockService, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/booking/confirm", NewBookingHandler(svc).Confirm)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/booking/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestConfirm_Created(t *testing.T) {
	svc := new(mockService)
	svc.On("Confirm", mock.Anything, mock.MatchedBy(func(r *model.ConfirmBookingRequest) bool {
		return r.UserID == 7 &&
			r.TotalAmount.Equal(decimal.NewFromInt(2000)) &&
			r.Discount.Equal(decimal.NewFromInt(400)) &&
			r.DiscountID != nil && *r.DiscountID == 1 &&
			r.ForFamilyMember &&
			assert.ObjectsAreEqual([]int64{1, 2}, r.ScheduleIDs)
	})).Return(&model.ConfirmBookingResult{Booking: &model.Booking{ID: 11, UserID: 7}}, nil)

	w := doConfirm(svc, `{"user_id":7,"total_amount":"2000","discount":400,"discount_id":1,"for_family_member":1,"schedule_id":"[1,2]"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Booking added successfully"`)
	svc.AssertExpectations(t)
}

func TestConfirm_ValidationErrors(t *testing.T) {
	svc := new(mockService)

	w := doConfirm(svc, `{"total_amount":"12.345"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"user_id"`)
	assert.Contains(t, body, `"total_amount"`)
	assert.Contains(t, body, `"schedule_id"`)
	svc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
}

func TestConfirm_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"exhausted discount", model.NewDiscountUnavailableError(), http.StatusNotFound, "Invalid or expired discount ID."},
		{"internal", model.NewInternalError(assert.AnError), http.StatusInternalServerError, "An error occurred while confirming the booking."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Confirm", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doConfirm(svc, `{"user_id":7,"total_amount":100,"discount_id":3,"schedule_id":[4]}`)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, `{"status":false,"message":"`+tt.wantMsg+`"}`, w.Body.String())
		})
	}
}
