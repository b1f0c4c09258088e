package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/services"
)

// Three independent read-only rankings; all degrade to empty lists.

// GET /api/leaderboard/top-readers
func GetTopReaders(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	entries, err := services.TopReaders(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// GET /api/leaderboard/streak-leaders
func GetStreakLeaders(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	entries, err := services.StreakLeaders(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// GET /api/leaderboard/most-reviewers
func GetMostReviewers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	entries, err := services.TopReviewers(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
