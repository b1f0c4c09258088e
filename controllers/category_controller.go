package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
)

// GET /api/categories
func GetCategories(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GET /api/categories/:id/books
func GetCategoryBooks(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id"})
		return
	}

	var books []models.Book
	if err := db.Where("category_id = ?", id).Order("title ASC").Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch books"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// POST /api/categories  (admin)
func CreateCategory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return
	}
	slugValue := slug.Make(name)

	var count int64
	db.Model(&models.Category{}).
		Where("LOWER(TRIM(name)) = ? OR slug = ?", strings.ToLower(name), slugValue).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name already exists"})
		return
	}

	category := models.Category{
		Name:        name,
		Slug:        slugValue,
		Description: input.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category created successfully", "category": category})
}

// DeleteCategory removes the category and clears category_id on its
// books in the same transaction, so no book is left pointing at a
// missing category.
// DELETE /api/categories/:id  (admin)
func DeleteCategory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id"})
		return
	}

	var deleted int64
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Book{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, "id = ?", id)
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
