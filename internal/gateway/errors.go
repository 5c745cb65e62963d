package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hollowdrift/claudegate/internal/backend"
)

// apiError pairs a client-facing message with an HTTP status. Every handler
// failure is funneled through writeError so the taxonomy is mapped in one
// place.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func errBadRequest(msg string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: msg}
}

func errUnauthenticated(msg string) *apiError {
	return &apiError{status: http.StatusUnauthorized, message: msg}
}

func errForbidden(msg string) *apiError {
	return &apiError{status: http.StatusForbidden, message: msg}
}

func errUnsupported(msg string) *apiError {
	return &apiError{status: http.StatusNotImplemented, message: msg}
}

func errInternal(msg string) *apiError {
	return &apiError{status: http.StatusInternalServerError, message: msg}
}

// writeError maps an error to its HTTP status and JSON {error} body.
func writeError(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		c.JSON(ae.status, gin.H{"error": ae.message})
		return
	}
	if errors.Is(err, backend.ErrNotSupported) {
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "backend timed out"})
		return
	}
	var be *backend.Error
	if errors.As(err, &be) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": be.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
