package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/middleware"
	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/services"
)

type SaveProgressRequest struct {
	BookID       string `json:"bookId" binding:"required"`
	Progress     *int   `json:"progress" binding:"required"`
	LastReadPage *int   `json:"lastReadPage"`
}

// SaveProgress upserts the (user, book) reading-history row.
// POST /api/reading-history
func SaveProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if *req.Progress < 0 || *req.Progress > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Progress must be between 0 and 100"})
		return
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bookId"})
		return
	}
	var book models.Book
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Book does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update progress"})
		return
	}

	now := time.Now()

	var history models.ReadingHistory
	result := db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&history)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		history = models.ReadingHistory{
			UserID:         userID,
			BookID:         bookID,
			Progress:       *req.Progress,
			LastAccessedAt: now,
		}
		if req.LastReadPage != nil {
			history.LastReadPage = *req.LastReadPage
		}
		if history.Progress >= 100 {
			history.CompletedAt = &now
		}
		if err := db.Create(&history).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update progress"})
			return
		}
	} else if result.Error == nil {
		history.Progress = *req.Progress
		history.LastAccessedAt = now
		if req.LastReadPage != nil {
			history.LastReadPage = *req.LastReadPage
		}
		// Completion is one-way: set once, never touched again.
		if history.Progress >= 100 && history.CompletedAt == nil {
			history.CompletedAt = &now
		}
		if err := db.Save(&history).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update progress"})
			return
		}
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update progress"})
		return
	}

	// Streak counts any reading activity on a new calendar day.
	if _, err := services.UpdateStreak(db, userID, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update progress"})
		return
	}

	db.Preload("Book").First(&history, "id = ?", history.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Progress updated successfully",
		"history": history,
	})
}

// ToggleBookmark flips is_bookmarked, creating a zero-progress row if the
// user never opened the book.
// POST /api/reading-history/bookmark/:bookId
func ToggleBookmark(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bookId"})
		return
	}
	var book models.Book
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Book does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to toggle bookmark"})
		return
	}

	now := time.Now()

	var history models.ReadingHistory
	result := db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&history)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		history = models.ReadingHistory{
			UserID:         userID,
			BookID:         bookID,
			IsBookmarked:   true,
			LastAccessedAt: now,
		}
		if err := db.Create(&history).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to toggle bookmark"})
			return
		}
	} else if result.Error == nil {
		history.IsBookmarked = !history.IsBookmarked
		if err := db.Save(&history).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to toggle bookmark"})
			return
		}
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to toggle bookmark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bookmark toggled successfully",
		"history": history,
	})
}

// GetHistory returns the user's full history, most recently accessed
// first. Recency, not insertion order.
// GET /api/reading-history
func GetHistory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	var histories []models.ReadingHistory
	if err := db.Where("user_id = ?", userID).
		Preload("Book").
		Order("last_accessed_at DESC").
		Find(&histories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reading history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": histories})
}

// GetRecentReads returns the first N of the recency ordering.
// GET /api/reading-history/recent?limit=N
func GetRecentReads(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	limit := 5
	if l := c.Query("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}

	var histories []models.ReadingHistory
	if err := db.Where("user_id = ?", userID).
		Preload("Book").
		Order("last_accessed_at DESC").
		Limit(limit).
		Find(&histories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch recent reads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recent": histories})
}
