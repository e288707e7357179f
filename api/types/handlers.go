package types

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/pkg/errors"
	"github.com/killallgit/book-search/pkg/logging"
)

// Handler utility functions to reduce duplication across handlers

// ParseIntQuery reads an optional integer query parameter, returning def
// when it is absent. Sends an error response if parsing fails.
func ParseIntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		SendBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return value, true
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Error:   string(errors.ErrCodeInvalidInput),
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendError maps err to a status code and error response. AppErrors keep
// their code, message and details; anything else is an internal error.
func SendError(c *gin.Context, err error) {
	if appErr, ok := errors.As(err); ok {
		status := appErr.GetHTTPCode()
		if status >= http.StatusInternalServerError {
			logging.For(c.Request.Context()).WithError(err).Error("Request failed")
		}
		c.JSON(status, ErrorResponse{
			Status:  StatusError,
			Message: appErr.Message,
			Error:   string(appErr.Code),
			Details: appErr.Details,
		})
		return
	}

	logging.For(c.Request.Context()).WithError(err).Error("Request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Status:  StatusError,
		Message: "Internal server error",
		Error:   string(errors.ErrCodeInternal),
	})
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Error:   string(errors.ErrCodeValidation),
	})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Error:   string(errors.ErrCodeNotFound),
	})
}

// SendServiceUnavailable sends a standardized unavailable response
func SendServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Error:   string(errors.ErrCodeServiceDown),
	})
}
