package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/services"
)

type BookInput struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	CategoryID  *string `json:"categoryId"`
	Description string  `json:"description"`
	CoverURL    string  `json:"coverUrl"`
	PdfURL      string  `json:"pdfUrl"`
	ISBN        string  `json:"isbn"`
	Year        int     `json:"year"`
	Pages       int     `json:"pages"`
	Language    string  `json:"language"`
}

func parseCategoryID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GET /api/books?search=
func GetBooks(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Book{}).Preload("Category")
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}

	var books []models.Book
	if err := query.Order("created_at DESC").Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch books"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// GET /api/books/:id
func GetBook(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book id"})
		return
	}

	var book models.Book
	if err := db.Preload("Category").First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch book"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// POST /api/books  (admin)
func CreateBook(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	categoryID, err := parseCategoryID(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid categoryId"})
		return
	}

	book := models.Book{
		Title:       input.Title,
		Author:      input.Author,
		CategoryID:  categoryID,
		Description: input.Description,
		CoverURL:    input.CoverURL,
		PdfURL:      input.PdfURL,
		ISBN:        input.ISBN,
		Year:        input.Year,
		Pages:       input.Pages,
		Language:    input.Language,
	}
	if err := db.Create(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create book"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book created successfully", "book": book})
}

// PATCH /api/books/:id  (admin)
func UpdateBook(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book id"})
		return
	}

	var book models.Book
	if err := db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update book"})
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// Only whitelisted columns are patchable.
	allowed := map[string]string{
		"title": "title", "author": "author", "description": "description",
		"coverUrl": "cover_url", "pdfUrl": "pdf_url", "isbn": "isbn",
		"year": "year", "pages": "pages", "language": "language",
		"categoryId": "category_id",
	}
	updates := map[string]interface{}{}
	for key, value := range patch {
		column, ok := allowed[key]
		if !ok {
			continue
		}
		if key == "categoryId" {
			if value == nil {
				updates[column] = nil
				continue
			}
			raw, _ := value.(string)
			catID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid categoryId"})
				return
			}
			updates[column] = catID
			continue
		}
		updates[column] = value
	}

	if len(updates) > 0 {
		if err := db.Model(&book).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update book"})
			return
		}
	}

	db.Preload("Category").First(&book, "id = ?", id)
	c.JSON(http.StatusOK, gin.H{"message": "Book updated successfully", "book": book})
}

// DELETE /api/books/:id  (admin)
func DeleteBook(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book id"})
		return
	}

	result := db.Delete(&models.Book{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete book"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// GenerateSummary asks Gemini for a catalog summary and persists it with
// a generation timestamp.
// POST /api/books/:id/generate-summary  (admin)
func GenerateSummary(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book id"})
		return
	}

	var book models.Book
	if err := db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch book"})
		return
	}

	prompt := services.BookSummaryPrompt(book.Title, book.Author, book.Description)
	summary, err := services.GeminiGenerateText(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate summary"})
		return
	}

	now := time.Now()
	book.AISummary = &summary
	book.SummaryGeneratedAt = &now
	if err := db.Save(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Summary generated successfully", "book": book})
}
