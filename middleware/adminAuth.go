package middleware

import (
	"net/http"
	"strings"

	"vibezone/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards admin endpoints with a signed HS256 token
// carrying an admin role claim.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateAdminToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminSubject", claims["sub"])
		c.Set("isAdmin", true)
		c.Next()
	}
}
