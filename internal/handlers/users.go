package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/swiftparcel/swiftparcel-backend/internal/models"
)

// CreateUser records a user on first signup. Repeat signups for the same
// email only refresh the last-login timestamp.
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
			Name  string `json:"name"`
			Photo string `json:"photo"`
			Role  string `json:"role"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			db.Model(&existing).Update("last_logged_in_at", time.Now())
			c.JSON(200, gin.H{"message": "User Exist", "insertedId": nil})
			return
		}

		role := input.Role
		if role == "" {
			role = models.RoleUser
		}

		user := models.User{
			Email:          input.Email,
			Name:           input.Name,
			Photo:          input.Photo,
			Role:           role,
			LastLoggedInAt: time.Now(),
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// GetUsers lists all users, newest first
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(200, users)
	}
}

// UpdateUserRole sets a user's role (admin action)
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var input struct {
			Role string `json:"role" binding:"required,oneof=user rider admin"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := db.Model(&models.User{}).Where("id = ?", id).Update("role", input.Role)
		if res.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update role"})
			return
		}

		c.JSON(200, gin.H{"modifiedCount": res.RowsAffected})
	}
}
