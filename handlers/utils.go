package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/database"

	"github.com/gin-gonic/gin"
)

var DB *database.DB

// InitializeHandlers wires the handler package to the database
func InitializeHandlers(db *database.DB) {
	DB = db
}

// pathID parses an integer path parameter, replying 400 on garbage.
// The second return value reports whether the handler should continue.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func userExists(userID int) (bool, error) {
	var exists bool
	err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}

func shoeExists(shoeDetailID int) (bool, error) {
	var exists bool
	err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM shoe_details WHERE shoe_detail_id = $1)`, shoeDetailID).Scan(&exists)
	return exists, err
}

// logInteraction appends a row to the interaction history. Write paths
// call this after their own insert succeeds; a failure here must not
// fail the request, so it is only logged.
func logInteraction(userID, shoeDetailID int, interactionType string) {
	_, err := DB.Exec(`
		INSERT INTO user_interactions (id_user, shoe_detail_id, interaction_type, interaction_date)
		VALUES ($1, $2, $3, now())
	`, userID, shoeDetailID, interactionType)
	if err != nil {
		log.Printf("Failed to log %s interaction for user %d shoe %d: %v", interactionType, userID, shoeDetailID, err)
	}
}
