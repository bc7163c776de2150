package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/utils/jwt_parse"
)

// AuthMiddleware validates the bearer token and guarantees a usable
// user_id in the context for everything behind it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwt_parse.ParseJWTToken()(c)
		if c.IsAborted() {
			return
		}

		if _, exists := c.Get("user_id"); !exists {
			logger.ErrorLogger.Error("User ID not found in context after JWT parsing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": "Unauthorized: missing user identification from token"})
			return
		}

		c.Next()
	}
}

// RequireRoles allows the request through only when the token carries one
// of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		value, _ := c.Get("role")
		role, _ := value.(string)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "ACCESS_DENIED", "error": "Forbidden: insufficient role"})
			return
		}
		c.Next()
	}
}
