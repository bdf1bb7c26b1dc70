package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// ProcessPayment records a payment for an order. One payment per order;
// the unique constraint on order_id backs up the pre-check.
func ProcessPayment(c *gin.Context) {
	var req struct {
		OrderID       int    `json:"order_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
		PaymentStatus string `json:"payment_status" binding:"required"`
		PaymentDate   string `json:"payment_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order_id, payment_method, payment_status and payment_date are required"})
		return
	}

	if _, err := time.Parse("2006-01-02", req.PaymentDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format. Use YYYY-MM-DD."})
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM orders WHERE order_id = $1)`, req.OrderID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order not found"})
		return
	}

	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM payments WHERE order_id = $1)`, req.OrderID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment already processed for this order"})
		return
	}

	_, err := DB.Exec(`
		INSERT INTO payments (order_id, payment_method, payment_status, payment_date)
		VALUES ($1, $2, $3, $4)
	`, req.OrderID, req.PaymentMethod, req.PaymentStatus, req.PaymentDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment already processed for this order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment processed successfully"})
}

// UpdatePaymentStatus changes a payment's status
func UpdatePaymentStatus(c *gin.Context) {
	paymentID, ok := pathID(c, "payment_id")
	if !ok {
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment status is required"})
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM payments WHERE payment_id = $1)`, paymentID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}

	if _, err := DB.Exec(`UPDATE payments SET payment_status = $1 WHERE payment_id = $2`, req.PaymentStatus, paymentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
}

// GetPayment returns one payment
func GetPayment(c *gin.Context) {
	paymentID, ok := pathID(c, "payment_id")
	if !ok {
		return
	}

	var p models.Payment
	err := DB.QueryRow(`
		SELECT payment_id, order_id, payment_method, payment_status, to_char(payment_date, 'YYYY-MM-DD')
		FROM payments WHERE payment_id = $1
	`, paymentID).Scan(&p.PaymentID, &p.OrderID, &p.PaymentMethod, &p.PaymentStatus, &p.PaymentDate)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetPayments returns every payment
func GetPayments(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT payment_id, order_id, payment_method, payment_status, to_char(payment_date, 'YYYY-MM-DD')
		FROM payments ORDER BY payment_id
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments"})
		return
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.PaymentID, &p.OrderID, &p.PaymentMethod, &p.PaymentStatus, &p.PaymentDate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan payment"})
			return
		}
		payments = append(payments, p)
	}

	if len(payments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No payments found"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// DeletePayment removes a payment
func DeletePayment(c *gin.Context) {
	paymentID, ok := pathID(c, "payment_id")
	if !ok {
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM payments WHERE payment_id = $1)`, paymentID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM payments WHERE payment_id = $1`, paymentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
