package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/dto"
	"github.com/avelichko/taskdeck/internal/service"
)

// principalKey is the gin context key the authenticated principal lives
// under for the remainder of request processing.
const principalKey = "principal"

// AuthMiddleware is the request-time authentication gate. When a bearer
// token is present it is verified, checked against the revocation list and
// turned into a principal attached to the request context. A request without
// an Authorization header proceeds unauthenticated; handlers that need a
// principal reject it downstream.
func AuthMiddleware(tokenService service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		tokenString := parts[1]

		if err := tokenService.VerifyAndValidate(tokenString); err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		tokenID, err := tokenService.GetID(tokenString)
		if err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		// Revoked access tokens are rejected before any business logic runs.
		if err := tokenService.CheckInvalidated(c.Request.Context(), tokenID); err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		principal, err := tokenService.Principal(tokenString)
		if err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate through the gate
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal for this request, if any
func CurrentPrincipal(c *gin.Context) (*domain.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*domain.Principal)
	return principal, ok
}
