package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationError(c, validation.Errors{
		"discount_type": errors.New("The discount type field is required."),
		"user_left":     nil,
	})

	assert.Equal(t, 422, w.Code)

	var body struct {
		Status  bool                `json:"status"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, "Validation error", body.Message)
	assert.Equal(t, []string{"The discount type field is required."}, body.Errors["discount_type"])
	assert.NotContains(t, body.Errors, "user_left")
}

func TestSuccessOmitsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, "Member created successfully", gin.H{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":true,"message":"Member created successfully","data":{"id":1}}`, w.Body.String())
}

func TestFieldErrorsPlainError(t *testing.T) {
	out := FieldErrors(errors.New("boom"))
	assert.Equal(t, map[string][]string{"request": {"boom"}}, out)
}
