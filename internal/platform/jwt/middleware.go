package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"brokerage_backend/internal/api"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.NewError(api.CodeUnauthenticated, "missing bearer token"))
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		userID, err := v.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.NewError(api.CodeUnauthenticated, "invalid token"))
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFrom returns the user id stored by AuthRequired.
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}
