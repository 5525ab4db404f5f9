package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelichko/taskdeck/internal/dto"
	"github.com/avelichko/taskdeck/internal/repository"
	"github.com/avelichko/taskdeck/internal/service"
	"github.com/avelichko/taskdeck/internal/token"
)

// writeAuthError maps authentication-path errors to HTTP. Token failures
// collapse into one generic 401: the response never reveals whether a token
// was expired, forged, or revoked. A store failure is a 500 - authentication
// must fail closed when the revocation list is unreachable.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUnavailable):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Authentication is temporarily unavailable",
		})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	case errors.Is(err, token.ErrTokenExpired),
		errors.Is(err, token.ErrSignatureInvalid),
		errors.Is(err, token.ErrTokenMalformed),
		errors.Is(err, service.ErrTokenAlreadyInvalidated),
		errors.Is(err, service.ErrClaimMissing),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUserStatusInvalid),
		errors.Is(err, service.ErrCredentialInvalid):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid or expired credentials",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}

// writeTaskError maps task-path errors to HTTP
func writeTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "Forbidden",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}
