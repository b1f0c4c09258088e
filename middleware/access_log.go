package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
)

// AccessLogMiddleware records each handled API request; the admin visit
// analytics are derived from these rows. Runs after the handler so the
// authenticated user (if any) and the final status are known.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/api") {
			return
		}

		entry := models.AccessLog{
			Method: c.Request.Method,
			Path:   path,
			Status: c.Writer.Status(),
		}
		if userID, err := uuid.Parse(c.GetString("user_id")); err == nil {
			entry.UserID = &userID
		}

		db := c.MustGet("db").(*gorm.DB)
		db.Create(&entry)
	}
}
