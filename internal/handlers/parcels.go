package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/swiftparcel/swiftparcel-backend/internal/models"
	"github.com/swiftparcel/swiftparcel-backend/internal/services"
)

// CreateParcel books a parcel. Payment status is always forced to unpaid;
// the tracking id only exists once the parcel is paid for.
func CreateParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SenderName      string  `json:"senderName"`
			SenderEmail     string  `json:"senderEmail" binding:"required,email"`
			SenderAddress   string  `json:"senderAddress"`
			ReceiverName    string  `json:"receiverName"`
			ReceiverAddress string  `json:"receiverAddress"`
			Phone           string  `json:"phone"`
			ParcelName      string  `json:"parcelName" binding:"required"`
			ParcelType      string  `json:"parcelType"`
			Cost            float64 `json:"cost" binding:"required,gt=0"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		parcel := models.Parcel{
			SenderName:      input.SenderName,
			SenderEmail:     input.SenderEmail,
			SenderAddress:   input.SenderAddress,
			ReceiverName:    input.ReceiverName,
			ReceiverAddress: input.ReceiverAddress,
			Phone:           input.Phone,
			ParcelName:      input.ParcelName,
			ParcelType:      input.ParcelType,
			Cost:            input.Cost,
			PaymentStatus:   models.PaymentStatusUnpaid,
			DeliveryStatus:  models.DeliveryStatusPending,
		}

		if err := db.Create(&parcel).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to create parcel",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, parcel)
	}
}

// GetParcels lists parcels, optionally filtered by sender email, newest first
func GetParcels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at desc")
		if email := c.Query("email"); email != "" {
			query = query.Where("sender_email = ?", email)
		}

		var parcels []models.Parcel
		if err := query.Find(&parcels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch parcels"})
			return
		}

		c.JSON(200, parcels)
	}
}

// GetParcel fetches a single parcel. Absence is an empty success, not an
// error: callers treat a null body as "not found".
func GetParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var parcel models.Parcel
		if err := db.First(&parcel, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(200, nil)
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch parcel"})
			return
		}

		c.JSON(200, parcel)
	}
}

// DeleteParcel removes a parcel booking
func DeleteParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res := db.Delete(&models.Parcel{}, "id = ?", id)
		if res.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete parcel"})
			return
		}

		c.JSON(200, gin.H{"deletedCount": res.RowsAffected})
	}
}

// TrackParcel looks a parcel up by its tracking id
func TrackParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackingID := c.Param("trackingId")

		var parcel models.Parcel
		if err := db.Where("tracking_id = ?", trackingID).First(&parcel).Error; err != nil {
			c.JSON(404, gin.H{"error": "No parcel with that tracking id"})
			return
		}

		c.JSON(200, parcel)
	}
}

// UploadParcelPhoto attaches a delivery-proof photo to a parcel and marks
// it delivered
func UploadParcelPhoto(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var parcel models.Parcel
		if err := db.First(&parcel, "id = ?", id).Error; err != nil {
			c.JSON(404, gin.H{"error": "Parcel not found"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery photo is required"})
			return
		}

		photoURL, err := services.UploadImage(file, "parcels")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to upload photo",
				"details": err.Error(),
			})
			return
		}

		updates := map[string]interface{}{
			"photo_url":       photoURL,
			"delivery_status": models.DeliveryStatusDelivered,
		}
		if err := db.Model(&parcel).Updates(updates).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update parcel"})
			return
		}

		if hub != nil {
			hub.BroadcastParcelEvent(services.ParcelEvent{
				Type:     "parcel.delivered",
				ParcelID: parcel.ID,
				Status:   models.DeliveryStatusDelivered,
			})
		}

		c.JSON(200, gin.H{
			"parcelId": parcel.ID,
			"photoUrl": services.GetImageURL(photoURL),
		})
	}
}
