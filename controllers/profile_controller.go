package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/middleware"
	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/services"
)

// GET /api/user/reading-streak
func GetReadingStreak(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	streak, err := services.GetStreak(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch streak"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"currentStreak": streak.CurrentStreak,
		"longestStreak": streak.LongestStreak,
	})
}

// GET /api/user/reading-goal
func GetReadingGoal(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	var goal models.ReadingGoal
	err := db.First(&goal, "user_id = ?", userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reading goal"})
		return
	}

	booksRead, err := services.BooksReadThisYear(db, userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reading goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"targetBooks": goal.TargetBooks,
		"booksRead":   booksRead,
	})
}

// POST /api/user/reading-goal
func UpdateReadingGoal(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	var input struct {
		TargetBooks *int `json:"targetBooks" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if *input.TargetBooks < 1 || *input.TargetBooks > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Target must be between 1 and 1000 books"})
		return
	}

	var goal models.ReadingGoal
	err := db.First(&goal, "user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		goal = models.ReadingGoal{UserID: userID, TargetBooks: *input.TargetBooks}
		err = db.Create(&goal).Error
	case err == nil:
		goal.TargetBooks = *input.TargetBooks
		err = db.Save(&goal).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update reading goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reading goal updated",
		"targetBooks": goal.TargetBooks,
	})
}

// GET /api/user/achievements
func GetAchievements(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	achievements := services.EvaluateAchievements(db, userID, time.Now())
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// GET /api/user/wishlist
func GetWishlist(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	var histories []models.ReadingHistory
	if err := db.Where("user_id = ? AND is_bookmarked = ?", userID, true).
		Preload("Book").
		Order("last_accessed_at DESC").
		Find(&histories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
		return
	}

	books := make([]models.Book, 0, len(histories))
	for _, h := range histories {
		books = append(books, h.Book)
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": books})
}
