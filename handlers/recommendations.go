package handlers

import (
	"database/sql"
	"net/http"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/services"

	"github.com/gin-gonic/gin"
)

// TrainRecommendations triggers a full recommendation rebuild. Returns
// 200 for both success and skipped outcomes; store failures surface as 500.
func TrainRecommendations(c *gin.Context) {
	result, err := services.Recommendations.Rebuild(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

const recommendationQuery = `
	SELECT r.id_shoe_recommendation, r.id_user, r.shoe_detail_id,
	       s.shoe_name, s.shoe_price, s.shoe_size, s.stock, s.image_url
	FROM shoe_recommendations r
	JOIN shoe_details s ON r.shoe_detail_id = s.shoe_detail_id
`

func queryRecommendations(c *gin.Context, query string, args ...interface{}) ([]models.ShoeRecommendationWithShoe, bool) {
	rows, err := DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch recommendations"})
		return nil, false
	}
	defer rows.Close()

	recs := []models.ShoeRecommendationWithShoe{}
	for rows.Next() {
		var r models.ShoeRecommendationWithShoe
		if err := rows.Scan(&r.IDShoeRecommendation, &r.UserID, &r.ShoeDetailID,
			&r.ShoeName, &r.ShoePrice, &r.ShoeSize, &r.Stock, &r.ImageURL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan recommendation"})
			return nil, false
		}
		recs = append(recs, r)
	}
	return recs, true
}

// GetRecommendationsForUser returns a user's feed joined with shoe
// details. An empty feed is an empty list, not a 404.
func GetRecommendationsForUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	recs, ok := queryRecommendations(c, recommendationQuery+` WHERE r.id_user = $1 ORDER BY r.id_shoe_recommendation`, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recs)
}

// GetAllRecommendations returns every recommendation row
func GetAllRecommendations(c *gin.Context) {
	recs, ok := queryRecommendations(c, recommendationQuery+` ORDER BY r.id_shoe_recommendation`)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recs)
}

// GetRecommendation returns one recommendation row
func GetRecommendation(c *gin.Context) {
	id, ok := pathID(c, "id_shoe_recommendation")
	if !ok {
		return
	}

	var r models.ShoeRecommendationWithShoe
	err := DB.QueryRow(recommendationQuery+` WHERE r.id_shoe_recommendation = $1`, id).Scan(
		&r.IDShoeRecommendation, &r.UserID, &r.ShoeDetailID,
		&r.ShoeName, &r.ShoePrice, &r.ShoeSize, &r.Stock, &r.ImageURL)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recommendation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// AddRecommendation manually inserts a recommendation row
func AddRecommendation(c *gin.Context) {
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

	if err := DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM shoe_recommendations WHERE id_user = $1 AND shoe_detail_id = $2)
	`, req.UserID, req.ShoeDetailID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Recommendation already exists"})
		return
	}

	_, err = DB.Exec(`
		INSERT INTO shoe_recommendations (id_user, shoe_detail_id) VALUES ($1, $2)
	`, req.UserID, req.ShoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add recommendation"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recommendation added successfully"})
}

// UpdateRecommendation repoints a recommendation row
func UpdateRecommendation(c *gin.Context) {
	id, ok := pathID(c, "id_shoe_recommendation")
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

	var rec models.ShoeRecommendation
	err := DB.QueryRow(`
		SELECT id_shoe_recommendation, id_user, shoe_detail_id FROM shoe_recommendations WHERE id_shoe_recommendation = $1
	`, id).Scan(&rec.IDShoeRecommendation, &rec.UserID, &rec.ShoeDetailID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recommendation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if req.UserID != nil {
		rec.UserID = *req.UserID
	}
	if req.ShoeDetailID != nil {
		rec.ShoeDetailID = *req.ShoeDetailID
	}

	exists, err := userExists(rec.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	exists, err = shoeExists(rec.ShoeDetailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Shoe not found"})
		return
	}

	_, err = DB.Exec(`
		UPDATE shoe_recommendations SET id_user = $1, shoe_detail_id = $2 WHERE id_shoe_recommendation = $3
	`, rec.UserID, rec.ShoeDetailID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update recommendation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recommendation updated successfully"})
}

// RemoveRecommendation deletes one recommendation row
func RemoveRecommendation(c *gin.Context) {
	id, ok := pathID(c, "id_shoe_recommendation")
	if !ok {
		return
	}

	var exists bool
	if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM shoe_recommendations WHERE id_shoe_recommendation = $1)`, id).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recommendation not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM shoe_recommendations WHERE id_shoe_recommendation = $1`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove recommendation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recommendation removed successfully"})
}
