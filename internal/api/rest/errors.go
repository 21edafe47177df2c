package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/stoneyard/remnant-portal/internal/api/shared/errors"
	"github.com/stoneyard/remnant-portal/internal/logger"
)

// codeStatus maps APIError codes to HTTP status codes
var codeStatus = map[apierrors.ErrorCode]int{
	apierrors.ErrCodeBadRequest:       http.StatusBadRequest,
	apierrors.ErrCodeValidationFailed: http.StatusBadRequest,
	apierrors.ErrCodeUnauthorized:     http.StatusUnauthorized,
	apierrors.ErrCodeForbidden:        http.StatusForbidden,
	apierrors.ErrCodeNotFound:         http.StatusNotFound,
	apierrors.ErrCodeConflict:         http.StatusConflict,
	apierrors.ErrCodeInternalError:    http.StatusInternalServerError,
	apierrors.ErrCodeDatabaseError:    http.StatusInternalServerError,
}

// respondError translates an executor error into an HTTP response. Server-side
// errors are logged and reduced to their generic message; internal detail never
// reaches the client.
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		logger.Error(err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, apierrors.NewInternalError("Internal server error"))
		return
	}

	status, ok := codeStatus[apiErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		logger.Error(apiErr, zap.String("path", c.Request.URL.Path))
		// Strip stored detail from the client-facing payload
		apiErr = &apierrors.APIError{Code: apiErr.Code, Message: apiErr.Message}
	}
	c.JSON(status, apiErr)
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(details))
}
