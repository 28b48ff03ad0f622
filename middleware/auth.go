package middleware

import (
	"net/http"
	"strings"

	"deskhive/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthUserMiddleware validates the bearer token issued by the identity
// provider and puts the verified subject id on the request context. The
// service never authenticates users itself; it only trusts verified claims.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", identity.UserID)
		c.Set("userEmail", identity.Email)
		c.Set("userName", identity.Name)
		c.Set("userRole", identity.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves identity when a token is present but lets
// anonymous requests through. Read-side listings degrade to empty results
// instead of erroring for anonymous browsers.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if identity, err := utils.ExtractIdentityFromToken(tokenString); err == nil {
				c.Set("userID", identity.UserID)
				c.Set("userEmail", identity.Email)
				c.Set("userName", identity.Name)
				c.Set("userRole", identity.Role)
			}
		}
		c.Next()
	}
}
