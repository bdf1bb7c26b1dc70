package handlers

import (
	"database/sql"
	"net/http"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/services"

	"github.com/gin-gonic/gin"
)

func categoryExists(categoryID int) (bool, error) {
	var exists bool
	err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM shoe_categories WHERE category_id = $1)`, categoryID).Scan(&exists)
	return exists, err
}

// AddShoe creates a shoe listing
func AddShoe(c *gin.Context) {
	var req struct {
		CategoryID int      `json:"category_id" binding:"required"`
		ShoeName   string   `json:"shoe_name" binding:"required"`
		ShoePrice  *float64 `json:"shoe_price" binding:"required"`
		ShoeSize   string   `json:"shoe_size" binding:"required"`
		Stock      *int     `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category_id, shoe_name, shoe_price, shoe_size and stock are required"})
		return
	}

	exists, err := categoryExists(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category ID does not exist"})
		return
	}

	var shoeDetailID int
	err = DB.QueryRow(`
		INSERT INTO shoe_details (category_id, shoe_name, shoe_price, shoe_size, stock, date_added, last_updated)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING shoe_detail_id
	`, req.CategoryID, req.ShoeName, *req.ShoePrice, req.ShoeSize, *req.Stock).Scan(&shoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add shoe detail"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Shoe detail added successfully",
		"shoe_detail_id": shoeDetailID,
	})
}

// GetShoes returns the full catalog
func GetShoes(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT shoe_detail_id, category_id, shoe_name, shoe_price, shoe_size, stock, image_url, date_added, last_updated
		FROM shoe_details ORDER BY shoe_detail_id
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch shoes"})
		return
	}
	defer rows.Close()

	var shoes []models.ShoeDetail
	for rows.Next() {
		var s models.ShoeDetail
		if err := rows.Scan(&s.ShoeDetailID, &s.CategoryID, &s.ShoeName, &s.ShoePrice,
			&s.ShoeSize, &s.Stock, &s.ImageURL, &s.DateAdded, &s.LastUpdated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan shoe"})
			return
		}
		shoes = append(shoes, s)
	}

	if len(shoes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No Shoe detail found"})
		return
	}
	c.JSON(http.StatusOK, shoes)
}

// GetShoe returns one shoe by id
func GetShoe(c *gin.Context) {
	shoeDetailID, ok := pathID(c, "shoe_detail_id")
	if !ok {
		return
	}

	var s models.ShoeDetail
	err := DB.QueryRow(`
		SELECT shoe_detail_id, category_id, shoe_name, shoe_price, shoe_size, stock, image_url, date_added, last_updated
		FROM shoe_details WHERE shoe_detail_id = $1
	`, shoeDetailID).Scan(&s.ShoeDetailID, &s.CategoryID, &s.ShoeName, &s.ShoePrice,
		&s.ShoeSize, &s.Stock, &s.ImageURL, &s.DateAdded, &s.LastUpdated)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe detail not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateShoe edits a shoe listing
func UpdateShoe(c *gin.Context) {
	shoeDetailID, ok := pathID(c, "shoe_detail_id")
	if !ok {
		return
	}

	var req struct {
		CategoryID *int     `json:"category_id"`
		ShoeName   *string  `json:"shoe_name"`
		ShoePrice  *float64 `json:"shoe_price"`
		ShoeSize   *string  `json:"shoe_size"`
		Stock      *int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	var s models.ShoeDetail
	err := DB.QueryRow(`
		SELECT shoe_detail_id, category_id, shoe_name, shoe_price, shoe_size, stock
		FROM shoe_details WHERE shoe_detail_id = $1
	`, shoeDetailID).Scan(&s.ShoeDetailID, &s.CategoryID, &s.ShoeName, &s.ShoePrice, &s.ShoeSize, &s.Stock)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe detail not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if req.CategoryID != nil {
		exists, err := categoryExists(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category ID does not exist"})
			return
		}
		s.CategoryID = *req.CategoryID
	}
	if req.ShoeName != nil {
		s.ShoeName = *req.ShoeName
	}
	if req.ShoePrice != nil {
		s.ShoePrice = *req.ShoePrice
	}
	if req.ShoeSize != nil {
		s.ShoeSize = *req.ShoeSize
	}
	if req.Stock != nil {
		s.Stock = *req.Stock
	}

	_, err = DB.Exec(`
		UPDATE shoe_details SET category_id = $1, shoe_name = $2, shoe_price = $3,
			shoe_size = $4, stock = $5, last_updated = now()
		WHERE shoe_detail_id = $6
	`, s.CategoryID, s.ShoeName, s.ShoePrice, s.ShoeSize, s.Stock, shoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update shoe detail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shoe detail updated successfully"})
}

// DeleteShoe removes a shoe listing
func DeleteShoe(c *gin.Context) {
	shoeDetailID, ok := pathID(c, "shoe_detail_id")
	if !ok {
		return
	}

	exists, err := shoeExists(shoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe detail not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM shoe_details WHERE shoe_detail_id = $1`, shoeDetailID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete shoe detail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shoe detail deleted successfully"})
}

// UploadShoeImage attaches a Cloudinary-hosted photo to a shoe
func UploadShoeImage(c *gin.Context) {
	shoeDetailID, ok := pathID(c, "shoe_detail_id")
	if !ok {
		return
	}

	exists, err := shoeExists(shoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe detail not found"})
		return
	}

	if services.Cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image uploads are not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read image file"})
		return
	}
	defer file.Close()

	url, err := services.Cloudinary.UploadImage(c.Request.Context(), file, "shoes")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
		return
	}

	_, err = DB.Exec(`UPDATE shoe_details SET image_url = $1, last_updated = now() WHERE shoe_detail_id = $2`, url, shoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Shoe image uploaded successfully",
		"image_url": url,
	})
}
