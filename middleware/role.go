package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRoleMiddleware gates staff-only routes on the verified role claim.
// Must run after JWTAuthUserMiddleware.
func AdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("userRole")
		if role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
