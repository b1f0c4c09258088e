package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amravati-mc/e-library-backend/models"
)

// RequireRoles gates a route group to the listed roles. AuthMiddleware
// must have run first on the same chain.
func RequireRoles(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, allowed := range allowedRoles {
			if _, ok := Authorize(c, allowed); ok {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden. Admin access required."})
		c.Abort()
	}
}
