package middleware

import (
	"net/http"
	"strings"

	"consultify/config"
	"consultify/models"

	"github.com/gin-gonic/gin"
)

// SuperAdminMiddleware validates the static operations token and installs a
// super-admin principal for the request.
func SuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if config.AppConfig.AdminToken == "" || tokenString != config.AppConfig.AdminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set(principalKey, models.Principal{
			ID:   "super-admin",
			Name: "Operations",
			Role: models.RoleSuperAdmin,
		})
		c.Next()
	}
}
