package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    int         `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes err using the application error taxonomy: the HTTP
// status comes from the AppError code, unknown errors collapse to 500.
func RespondError(c *gin.Context, err error) {
	c.JSON(apperrors.Status(err), &Response{
		Status:  "error",
		Message: err.Error(),
		Code:    int(apperrors.Code(err)),
	})
}
