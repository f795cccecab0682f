package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/task-service/internal/app/token"
	customErrors "github.com/taskhive/task-service/internal/domain/errors"
)

const currentUserKey = "currentUser"

// RequireAuth verifies the bearer session token and attaches the caller's
// identity to this request's context. The identity is request-scoped state:
// it lives on the gin context, never in a shared slot.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}

		claims, err := tokens.VerifySessionToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			if customErrors.IsTokenExpired(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(currentUserKey, claims)
		c.Next()
	}
}

// CurrentUser returns the identity attached by RequireAuth.
func CurrentUser(c *gin.Context) (token.SessionClaims, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return token.SessionClaims{}, false
	}
	claims, ok := v.(token.SessionClaims)
	return claims, ok
}
