package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/services"
)

// AuthMiddleware resolves the session cookie to a server-side session,
// rejects blocked users and slides the session expiry forward.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		token, err := c.Cookie(services.SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized. Please login."})
			c.Abort()
			return
		}

		sess, err := services.GetSession(db, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Session invalid or expired. Please login."})
			c.Abort()
			return
		}

		// A block takes effect on the next request, not just at login.
		var user models.User
		if err := db.Select("blocked").First(&user, "id = ?", sess.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			c.Abort()
			return
		}
		if user.Blocked {
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been blocked"})
			c.Abort()
			return
		}

		if err := services.TouchSession(db, sess); err == nil {
			c.Set("session_id", sess.ID)
		}
		c.Set("user_id", sess.UserID.String())
		c.Set("role", string(sess.Role))
		c.Next()
	}
}

// Authorize is the explicit capability check: it reads the authenticated
// identity from the request context and reports whether it carries the
// required role. Controllers and role middleware share it.
func Authorize(c *gin.Context, required models.UserRole) (uuid.UUID, bool) {
	userIDStr := c.GetString("user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, models.UserRole(c.GetString("role")) == required
}

// CurrentUserID returns the authenticated user's id, uuid.Nil if absent.
func CurrentUserID(c *gin.Context) uuid.UUID {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return uuid.Nil
	}
	return userID
}
