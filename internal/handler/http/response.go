// File: internal/handler/http/response.go
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
)

// ErrorResponse is the JSON error body of every identity endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError maps a domain error onto an HTTP status. Unknown errors
// become opaque 500s so internals never leak into responses.
func RespondWithError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case domainErrors.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: domainErrors.Message(err)})
	case domainErrors.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: domainErrors.Message(err)})
	case domainErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: domainErrors.Message(err)})
	case errors.Is(err, domainErrors.ErrOperationNotAllowed):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: domainErrors.Message(err)})
	case errors.Is(err, domainErrors.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domainErrors.Message(err)})
	default:
		logger.Error("Unhandled error in HTTP handler",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// RespondWithValidationError reports a request-binding failure.
func RespondWithValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
}
