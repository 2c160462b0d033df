package utils

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIError is an error that knows its HTTP status.
type APIError struct {
	Status  int
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) WithDetails(details map[string]interface{}) *APIError {
	e.Details = details
	return e
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func BadRequest(format string, args ...interface{}) *APIError {
	return NewAPIError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func Unauthorized(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *APIError {
	return NewAPIError(http.StatusForbidden, message)
}

func NotFound(resource string) *APIError {
	return NewAPIError(http.StatusNotFound, resource+" not found")
}

func Conflict(format string, args ...interface{}) *APIError {
	return NewAPIError(http.StatusConflict, fmt.Sprintf(format, args...))
}

func TooManyRequests() *APIError {
	return NewAPIError(http.StatusTooManyRequests, "too many requests, slow down")
}

func Internal(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// RespondError writes err as an ErrorResponse. Errors that are not an
// *APIError are logged and reported as 500.
func RespondError(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = Internal(err)
	}

	if apiErr.Status >= http.StatusInternalServerError {
		Zlog.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(apiErr.Status, types.ErrorResponse{
		Error:     http.StatusText(apiErr.Status),
		Message:   apiErr.Message,
		Details:   apiErr.Details,
		Timestamp: time.Now().UTC(),
	})
}
