package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an API error
type Error struct {
	Code    int
	Message string
}

// NewError creates a new API error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// errorBody is the failure payload shared by both services
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondError writes err as {success:false, error}. An *Error keeps its
// status code; anything else is a 500.
func respondError(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Code, errorBody{Error: apiErr.Message})
		return
	}
	c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
}
