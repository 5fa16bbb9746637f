package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, statusCode int, message string, errs interface{}) {
	c.JSON(statusCode, Response{
		Status:  false,
		Message: message,
		Errors:  errs,
	})
}

// ValidationError answers 422 with a field -> messages map
func ValidationError(c *gin.Context, err error) {
	c.JSON(422, Response{
		Status:  false,
		Message: "Validation error",
		Errors:  FieldErrors(err),
	})
}

// FieldErrors flattens ozzo validation errors into field -> []message.
// Anything else ends up under the "request" key.
func FieldErrors(err error) map[string][]string {
	out := make(map[string][]string)

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		out["request"] = []string{err.Error()}
		return out
	}

	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out[field] = append(out[field], ferr.Error())
	}

	return out
}
