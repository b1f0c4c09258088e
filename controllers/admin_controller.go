package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/services"
)

// GET /api/admin/analytics
func GetAnalytics(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	c.JSON(http.StatusOK, services.GetAnalyticsSummary(db))
}

// GET /api/admin/analytics-data
func GetAnalyticsData(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	c.JSON(http.StatusOK, gin.H{
		"dailyVisits":   services.DailyVisits(db, 7),
		"categoryStats": services.CategoryStats(db),
		"topBooks":      services.TopBooks(db, 5),
	})
}

// GET /api/admin/activity-logs?limit=N
func GetActivityLogs(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	limit := 20
	if l := c.Query("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	c.JSON(http.StatusOK, gin.H{"logs": services.RecentActivityLogs(db, limit)})
}

// GET /api/admin/sessions
func GetActiveSessions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	sessions, err := services.ActiveSessions(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GET /api/admin/user-activity/:period
func GetUserActivity(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	period := c.Param("period")
	switch period {
	case "daily", "weekly", "monthly", "yearly":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid period"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": services.VisitSeries(db, period)})
}

// GET /api/admin/users
func GetUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var users []models.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// PATCH /api/admin/users/:id/block
func BlockUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var input struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}

	user.Blocked = *input.Blocked
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /api/admin/generate-report  (PDF download)
func GenerateReport(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	filename := fmt.Sprintf("e-library-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := services.WritePDFReport(db, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate report"})
		return
	}
}

// GET /api/admin/export-excel  (xlsx download)
func ExportExcel(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	filename := fmt.Sprintf("e-library-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := services.WriteExcelReport(db, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate report"})
		return
	}
}
