package handlers

import (
	"database/sql"
	"net/http"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/gin-gonic/gin"
)

// GetUsers returns every account
func GetUsers(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT user_id, username, email, first_name, last_name, address, phone, role, date_added, last_updated
		FROM users ORDER BY user_id
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.Address, &u.Phone, &u.Role, &u.DateAdded, &u.LastUpdated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan user"})
			return
		}
		users = append(users, u)
	}

	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No users found"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns a single account by id
func GetUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	var u models.User
	err := DB.QueryRow(`
		SELECT user_id, username, email, first_name, last_name, address, phone, role, date_added, last_updated
		FROM users WHERE user_id = $1
	`, userID).Scan(&u.UserID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.Address, &u.Phone, &u.Role, &u.DateAdded, &u.LastUpdated)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// UpdateProfile lets a user edit their own profile
func UpdateProfile(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if currentUserID(c) != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Permission denied"})
		return
	}

	var req struct {
		Username  *string `json:"username"`
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Address   *string `json:"address"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	var u models.User
	err := DB.QueryRow(`
		SELECT user_id, username, email, first_name, last_name, address, phone
		FROM users WHERE user_id = $1
	`, userID).Scan(&u.UserID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Address, &u.Phone)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	if req.Username != nil && *req.Username != u.Username {
		var taken bool
		if err := DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND user_id != $2)`,
			*req.Username, userID).Scan(&taken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
			return
		}
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}

	_, err = DB.Exec(`
		UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4,
			address = $5, phone = $6, last_updated = now()
		WHERE user_id = $7
	`, u.Username, u.Email, u.FirstName, u.LastName, u.Address, u.Phone, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// DeleteUser removes an account (admin only, enforced by middleware)
func DeleteUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	exists, err := userExists(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if _, err := DB.Exec(`DELETE FROM users WHERE user_id = $1`, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
