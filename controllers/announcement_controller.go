package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/middleware"
	"github.com/amravati-mc/e-library-backend/models"
)

// GET /api/announcements?limit=N
func GetAnnouncements(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	limit := 10
	if l := c.Query("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}

	var announcements []models.Announcement
	if err := db.Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch announcements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

// POST /api/announcements  (admin)
func CreateAnnouncement(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	announcement := models.Announcement{
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: middleware.CurrentUserID(c),
	}
	if err := db.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create announcement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcement": announcement})
}

// DELETE /api/announcements/:id  (admin)
func DeleteAnnouncement(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid announcement id"})
		return
	}

	result := db.Delete(&models.Announcement{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete announcement"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Announcement not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
