package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/gin-gonic/gin"
)

var validOrderStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

func isValidOrderStatus(status string) bool {
	for _, s := range validOrderStatuses {
		if strings.ToLower(status) == s {
			return true
		}
	}
	return false
}

// CreateOrder places an order for the authenticated user and records an
// order interaction
func CreateOrder(c *gin.Context) {
	var req struct {
		ShoeDetailID int      `json:"shoe_detail_id" binding:"required"`
		OrderStatus  string   `json:"order_status" binding:"required"`
		OrderDate    string   `json:"order_date" binding:"required"`
		Amount       *float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "shoe_detail_id, order_status, order_date and amount are required"})
		return
	}

	userID := currentUserID(c)

	exists, err := userExists(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User not authenticated or does not exist"})
		return
	}

	exists, err = shoeExists(req.ShoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Shoe Detail ID does not exist"})
		return
	}

	if _, err := time.Parse("2006-01-02", req.OrderDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format. Use YYYY-MM-DD."})
		return
	}
	if !isValidOrderStatus(req.OrderStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status. Use one of: " + strings.Join(validOrderStatuses, ", ")})
		return
	}

	var orderID int
	err = DB.QueryRow(`
		INSERT INTO orders (user_id, shoe_detail_id, order_status, order_date, amount, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING order_id
	`, userID, req.ShoeDetailID, strings.ToLower(req.OrderStatus), req.OrderDate, *req.Amount).Scan(&orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	logInteraction(userID, req.ShoeDetailID, models.InteractionOrder)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created successfully",
		"order_id": orderID,
	})
}

// GetOrders returns every order
func GetOrders(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT order_id, user_id, shoe_detail_id, order_status, to_char(order_date, 'YYYY-MM-DD'), amount, last_updated
		FROM orders ORDER BY order_id
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.ShoeDetailID, &o.OrderStatus, &o.OrderDate, &o.Amount, &o.LastUpdated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan order"})
			return
		}
		orders = append(orders, o)
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersForUser returns a user's orders joined with shoe names
func GetOrdersForUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	rows, err := DB.Query(`
		SELECT o.order_id, o.user_id, o.shoe_detail_id, o.order_status, to_char(o.order_date, 'YYYY-MM-DD'), o.amount, o.last_updated,
		       COALESCE(s.shoe_name, 'Unknown')
		FROM orders o
		LEFT JOIN shoe_details s ON o.shoe_detail_id = s.shoe_detail_id
		WHERE o.user_id = $1 ORDER BY o.order_id
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.OrderWithShoe{}
	for rows.Next() {
		var o models.OrderWithShoe
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.ShoeDetailID, &o.OrderStatus, &o.OrderDate,
			&o.Amount, &o.LastUpdated, &o.ShoeName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan order"})
			return
		}
		orders = append(orders, o)
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrder changes status and/or date on an order
func UpdateOrder(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	var req struct {
		OrderStatus *string `json:"order_status"`
		OrderDate   *string `json:"order_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	var o models.Order
	err := DB.QueryRow(`
		SELECT order_id, order_status, to_char(order_date, 'YYYY-MM-DD') FROM orders WHERE order_id = $1
	`, orderID).Scan(&o.OrderID, &o.OrderStatus, &o.OrderDate)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if req.OrderStatus != nil {
		if !isValidOrderStatus(*req.OrderStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status. Use one of: " + strings.Join(validOrderStatuses, ", ")})
			return
		}
		o.OrderStatus = strings.ToLower(*req.OrderStatus)
	}
	if req.OrderDate != nil {
		if _, err := time.Parse("2006-01-02", *req.OrderDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format. Use YYYY-MM-DD."})
			return
		}
		o.OrderDate = *req.OrderDate
	}

	_, err = DB.Exec(`
		UPDATE orders SET order_status = $1, order_date = $2, last_updated = now() WHERE order_id = $3
	`, o.OrderStatus, o.OrderDate, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully"})
}

// DeleteOrder removes an order
func DeleteOrder(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM orders WHERE order_id = $1)`, orderID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM orders WHERE order_id = $1`, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
