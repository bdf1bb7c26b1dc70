package handlers

import (
	"database/sql"
	"net/http"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/gin-gonic/gin"
)

// GetWishlistForUser returns a user's wishlist
func GetWishlistForUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	rows, err := DB.Query(`
		SELECT id_wishlist, id_user, shoe_detail_id, date_added
		FROM wishlists WHERE id_user = $1 ORDER BY id_wishlist
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
		return
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.IDWishlist, &item.UserID, &item.ShoeDetailID, &item.DateAdded); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan wishlist item"})
			return
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist is empty"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAllWishlistItems returns every wishlist row
func GetAllWishlistItems(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT id_wishlist, id_user, shoe_detail_id, date_added FROM wishlists ORDER BY id_wishlist
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
		return
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.IDWishlist, &item.UserID, &item.ShoeDetailID, &item.DateAdded); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan wishlist item"})
			return
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

// GetWishlistItem returns a single wishlist row
func GetWishlistItem(c *gin.Context) {
	idWishlist, ok := pathID(c, "id_wishlist")
	if !ok {
		return
	}

	var item models.WishlistItem
	err := DB.QueryRow(`
		SELECT id_wishlist, id_user, shoe_detail_id, date_added FROM wishlists WHERE id_wishlist = $1
	`, idWishlist).Scan(&item.IDWishlist, &item.UserID, &item.ShoeDetailID, &item.DateAdded)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddToWishlist inserts a wishlist row and records a wishlist interaction
func AddToWishlist(c *gin.Context) {
	var req struct {
		UserID       int `json:"id_user" binding:"required"`
		ShoeDetailID int `json:"shoe_detail_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id_user and shoe_detail_id are required"})
		return
	}

	exists, err := userExists(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	exists, err = shoeExists(req.ShoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe not found"})
		return
	}

	_, err = DB.Exec(`
		INSERT INTO wishlists (id_user, shoe_detail_id, date_added) VALUES ($1, $2, now())
	`, req.UserID, req.ShoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to wishlist"})
		return
	}

	logInteraction(req.UserID, req.ShoeDetailID, models.InteractionWishlist)

	c.JSON(http.StatusCreated, gin.H{"message": "Item added to wishlist successfully"})
}

// UpdateWishlistItem repoints a wishlist row
func UpdateWishlistItem(c *gin.Context) {
	idWishlist, ok := pathID(c, "id_wishlist")
	if !ok {
		return
	}

	var req struct {
		UserID       *int `json:"id_user"`
		ShoeDetailID *int `json:"shoe_detail_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	var item models.WishlistItem
	err := DB.QueryRow(`
		SELECT id_wishlist, id_user, shoe_detail_id FROM wishlists WHERE id_wishlist = $1
	`, idWishlist).Scan(&item.IDWishlist, &item.UserID, &item.ShoeDetailID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if req.UserID != nil {
		item.UserID = *req.UserID
	}
	if req.ShoeDetailID != nil {
		item.ShoeDetailID = *req.ShoeDetailID
	}

	_, err = DB.Exec(`
		UPDATE wishlists SET id_user = $1, shoe_detail_id = $2, date_added = now() WHERE id_wishlist = $3
	`, item.UserID, item.ShoeDetailID, idWishlist)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Wishlist updated successfully"})
}

// RemoveFromWishlist deletes a wishlist row
func RemoveFromWishlist(c *gin.Context) {
	idWishlist, ok := pathID(c, "id_wishlist")
	if !ok {
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM wishlists WHERE id_wishlist = $1)`, idWishlist).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM wishlists WHERE id_wishlist = $1`, idWishlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist successfully"})
}
