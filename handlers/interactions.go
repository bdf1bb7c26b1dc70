package handlers

import (
	"net/http"
	"strings"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/gin-gonic/gin"
)

// GetInteractions returns the full interaction history
func GetInteractions(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT interaction_id, id_user, shoe_detail_id, interaction_type, interaction_date
		FROM user_interactions ORDER BY interaction_id
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch interactions"})
		return
	}
	defer rows.Close()

	interactions := []models.UserInteraction{}
	for rows.Next() {
		var in models.UserInteraction
		if err := rows.Scan(&in.InteractionID, &in.UserID, &in.ShoeDetailID, &in.InteractionType, &in.InteractionDate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan interaction"})
			return
		}
		interactions = append(interactions, in)
	}
	c.JSON(http.StatusOK, interactions)
}

// CreateInteraction records an explicit interaction (the storefront
// posts view events through here)
func CreateInteraction(c *gin.Context) {
	var req struct {
		UserID          int    `json:"id_user"`
		ShoeDetailID    int    `json:"shoe_detail_id"`
		InteractionType string `json:"interaction_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ShoeDetailID == 0 || req.InteractionType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
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

	if !models.IsValidInteractionType(req.InteractionType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid interaction type. Use one of: " + strings.Join(models.ValidInteractionTypes, ", ")})
		return
	}

	_, err = DB.Exec(`
		INSERT INTO user_interactions (id_user, shoe_detail_id, interaction_type, interaction_date)
		VALUES ($1, $2, $3, now())
	`, req.UserID, req.ShoeDetailID, req.InteractionType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record interaction"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Interaction recorded successfully"})
}

// UpdateInteraction changes the type on an existing interaction
func UpdateInteraction(c *gin.Context) {
	interactionID, ok := pathID(c, "interaction_id")
	if !ok {
		return
	}

	var req struct {
		InteractionType string `json:"interaction_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.InteractionType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "interaction_type is required"})
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM user_interactions WHERE interaction_id = $1)`, interactionID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Interaction not found"})
		return
	}

	if !models.IsValidInteractionType(req.InteractionType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid interaction type"})
		return
	}

	_, err := DB.Exec(`
		UPDATE user_interactions SET interaction_type = $1, interaction_date = now() WHERE interaction_id = $2
	`, req.InteractionType, interactionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update interaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interaction updated successfully"})
}

// DeleteInteraction removes an interaction row
func DeleteInteraction(c *gin.Context) {
	interactionID, ok := pathID(c, "interaction_id")
	if !ok {
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM user_interactions WHERE interaction_id = $1)`, interactionID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Interaction not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM user_interactions WHERE interaction_id = $1`, interactionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete interaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interaction deleted successfully"})
}
