package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
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

// Error renders an application error as the standard envelope. Every
// error is recovered here; nothing from the service layer crashes a
// request.
func Error(c *gin.Context, err error) {
	status := statusFor(apperrors.Code(err))
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request failed")
	}
	c.JSON(status, NewErrorResponse(err.Error()))
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrValidation:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrDecryption:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
