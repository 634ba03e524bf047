package middleware

import (
	"net/http"

	"consultify/models"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests whose principal does not hold one of the
// given roles. Super-admins pass every gate.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if principal.Role == models.RoleSuperAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
