package handlers

import (
	"database/sql"
	"net/http"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/gin-gonic/gin"
)

const cartItemQuery = `
	SELECT c.id_cart, c.id_user, c.shoe_detail_id, c.quantity, c.date_added, c.last_updated,
	       s.shoe_name, s.shoe_price, s.shoe_size, s.stock
	FROM carts c
	JOIN shoe_details s ON c.shoe_detail_id = s.shoe_detail_id
`

func scanCartItem(scanner interface{ Scan(...interface{}) error }) (models.CartItemWithShoe, error) {
	var item models.CartItemWithShoe
	err := scanner.Scan(&item.IDCart, &item.UserID, &item.ShoeDetailID, &item.Quantity,
		&item.DateAdded, &item.LastUpdated, &item.ShoeName, &item.ShoePrice, &item.ShoeSize, &item.Stock)
	return item, err
}

func queryCartForUser(c *gin.Context, userID int) {
	rows, err := DB.Query(cartItemQuery+` WHERE c.id_user = $1 ORDER BY c.id_cart`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
		return
	}
	defer rows.Close()

	items := []models.CartItemWithShoe{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan cart item"})
			return
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

// GetCart returns the caller's cart joined with shoe details
func GetCart(c *gin.Context) {
	queryCartForUser(c, currentUserID(c))
}

// GetCartForUser returns a user's cart; only the owner may look
func GetCartForUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if currentUserID(c) != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to view this cart"})
		return
	}
	queryCartForUser(c, userID)
}

// GetCartItem returns one cart row owned by the caller
func GetCartItem(c *gin.Context) {
	idCart, ok := pathID(c, "id_cart")
	if !ok {
		return
	}

	item, err := scanCartItem(DB.QueryRow(cartItemQuery+` WHERE c.id_cart = $1`, idCart))
	if err == sql.ErrNoRows || (err == nil && item.UserID != currentUserID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddToCart inserts a cart row, or merges quantity when the shoe is
// already there. Records a cart interaction either way.
func AddToCart(c *gin.Context) {
	var req struct {
		ShoeDetailID int `json:"shoe_detail_id"`
		Quantity     int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ShoeDetailID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Shoe detail ID and quantity are required"})
		return
	}

	userID := currentUserID(c)

	var shoe models.ShoeDetail
	err := DB.QueryRow(`
		SELECT shoe_detail_id, stock FROM shoe_details WHERE shoe_detail_id = $1
	`, req.ShoeDetailID).Scan(&shoe.ShoeDetailID, &shoe.Stock)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if shoe.Stock < req.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient stock available"})
		return
	}

	var existing models.CartItem
	err = DB.QueryRow(`
		SELECT id_cart, quantity FROM carts WHERE id_user = $1 AND shoe_detail_id = $2
	`, userID, req.ShoeDetailID).Scan(&existing.IDCart, &existing.Quantity)

	var message string
	var status int
	switch {
	case err == nil:
		_, err = DB.Exec(`UPDATE carts SET quantity = $1, last_updated = now() WHERE id_cart = $2`,
			existing.Quantity+req.Quantity, existing.IDCart)
		message = "Item quantity updated in cart"
		status = http.StatusOK
	case err == sql.ErrNoRows:
		_, err = DB.Exec(`
			INSERT INTO carts (id_user, shoe_detail_id, quantity, date_added, last_updated)
			VALUES ($1, $2, $3, now(), now())
		`, userID, req.ShoeDetailID, req.Quantity)
		message = "Item added to cart successfully"
		status = http.StatusCreated
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
		return
	}

	logInteraction(userID, req.ShoeDetailID, models.InteractionCart)

	c.JSON(status, gin.H{"message": message})
}

// UpdateCartItem edits quantity (and optionally the shoe) on an owned row
func UpdateCartItem(c *gin.Context) {
	idCart, ok := pathID(c, "id_cart")
	if !ok {
		return
	}

	var req struct {
		ShoeDetailID *int `json:"shoe_detail_id"`
		Quantity     *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	var item models.CartItem
	err := DB.QueryRow(`
		SELECT id_cart, id_user, shoe_detail_id, quantity FROM carts WHERE id_cart = $1
	`, idCart).Scan(&item.IDCart, &item.UserID, &item.ShoeDetailID, &item.Quantity)
	if err == sql.ErrNoRows || (err == nil && item.UserID != currentUserID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if req.ShoeDetailID != nil {
		item.ShoeDetailID = *req.ShoeDetailID
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	var stock int
	err = DB.QueryRow(`SELECT stock FROM shoe_details WHERE shoe_detail_id = $1`, item.ShoeDetailID).Scan(&stock)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if stock < item.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough stock"})
		return
	}

	_, err = DB.Exec(`
		UPDATE carts SET shoe_detail_id = $1, quantity = $2, last_updated = now() WHERE id_cart = $3
	`, item.ShoeDetailID, item.Quantity, idCart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully"})
}

// RemoveFromCart deletes an owned cart row
func RemoveFromCart(c *gin.Context) {
	idCart, ok := pathID(c, "id_cart")
	if !ok {
		return
	}

	var ownerID int
	err := DB.QueryRow(`SELECT id_user FROM carts WHERE id_cart = $1`, idCart).Scan(&ownerID)
	if err == sql.ErrNoRows || (err == nil && ownerID != currentUserID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM carts WHERE id_cart = $1`, idCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
}
