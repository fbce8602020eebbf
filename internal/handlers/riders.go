package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/swiftparcel/swiftparcel-backend/internal/models"
	"github.com/swiftparcel/swiftparcel-backend/internal/statemachine"
)

// CreateRider records a rider application. Status is always forced to
// pending regardless of what the applicant sends.
func CreateRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name             string `json:"name" binding:"required"`
			Email            string `json:"email" binding:"required,email"`
			Age              int    `json:"age"`
			Region           string `json:"region"`
			District         string `json:"district"`
			Phone            string `json:"phone"`
			NID              string `json:"nid"`
			BikeBrand        string `json:"bikeBrand"`
			BikeRegistration string `json:"bikeRegistration"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rider := models.Rider{
			Name:             input.Name,
			Email:            input.Email,
			Age:              input.Age,
			Region:           input.Region,
			District:         input.District,
			Phone:            input.Phone,
			NID:              input.NID,
			BikeBrand:        input.BikeBrand,
			BikeRegistration: input.BikeRegistration,
			Status:           models.RiderStatusPending,
		}

		if err := db.Create(&rider).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rider"})
			return
		}

		c.JSON(http.StatusCreated, rider)
	}
}

// GetRiders lists rider applications, optionally filtered by status,
// newest first
func GetRiders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at desc")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var riders []models.Rider
		if err := query.Find(&riders).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch riders"})
			return
		}

		c.JSON(200, riders)
	}
}

// UpdateRiderStatus moves a rider application through the review flow.
// Approval promotes the named user's role to rider as a side effect.
func UpdateRiderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var input struct {
			Status string `json:"status" binding:"required,oneof=pending approved rejected"`
			Email  string `json:"email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rider models.Rider
		if err := db.First(&rider, "id = ?", id).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rider not found"})
			return
		}

		if err := statemachine.CanTransition(rider.Status, input.Status); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := db.Model(&rider).Update("status", input.Status)
		if res.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update rider"})
			return
		}

		var roleRows int64
		if input.Status == models.RiderStatusApproved && input.Email != "" {
			roleRes := db.Model(&models.User{}).
				Where("email = ?", input.Email).
				Update("role", models.RoleRider)
			if roleRes.Error != nil {
				c.JSON(500, gin.H{"error": "Rider approved but role promotion failed"})
				return
			}
			roleRows = roleRes.RowsAffected
		}

		c.JSON(200, gin.H{
			"modifiedCount": res.RowsAffected,
			"roleModified":  roleRows,
		})
	}
}
