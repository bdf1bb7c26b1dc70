package handlers

import (
	"database/sql"
	"net/http"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/gin-gonic/gin"
)

// AddCategory creates a shoe category
func AddCategory(c *gin.Context) {
	var req struct {
		CategoryName string `json:"category_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return
	}

	_, err := DB.Exec(`
		INSERT INTO shoe_categories (category_name, date_added, last_updated)
		VALUES ($1, now(), now())
	`, req.CategoryName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully"})
}

// GetCategories returns all shoe categories
func GetCategories(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT category_id, category_name, date_added, last_updated
		FROM shoe_categories ORDER BY category_id
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	var categories []models.ShoeCategory
	for rows.Next() {
		var cat models.ShoeCategory
		if err := rows.Scan(&cat.CategoryID, &cat.CategoryName, &cat.DateAdded, &cat.LastUpdated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan category"})
			return
		}
		categories = append(categories, cat)
	}

	if len(categories) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No categories found"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory returns one category by id
func GetCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "category_id")
	if !ok {
		return
	}

	var cat models.ShoeCategory
	err := DB.QueryRow(`
		SELECT category_id, category_name, date_added, last_updated
		FROM shoe_categories WHERE category_id = $1
	`, categoryID).Scan(&cat.CategoryID, &cat.CategoryName, &cat.DateAdded, &cat.LastUpdated)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// UpdateCategory renames a category
func UpdateCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "category_id")
	if !ok {
		return
	}

	var req struct {
		CategoryName *string `json:"category_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	var current string
	err := DB.QueryRow(`SELECT category_name FROM shoe_categories WHERE category_id = $1`, categoryID).Scan(&current)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	name := current
	if req.CategoryName != nil {
		name = *req.CategoryName
	}

	_, err = DB.Exec(`
		UPDATE shoe_categories SET category_name = $1, last_updated = now() WHERE category_id = $2
	`, name, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

// DeleteCategory removes a category
func DeleteCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "category_id")
	if !ok {
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM shoe_categories WHERE category_id = $1)`, categoryID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM shoe_categories WHERE category_id = $1`, categoryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
