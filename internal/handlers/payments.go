package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/swiftparcel/swiftparcel-backend/internal/models"
	"github.com/swiftparcel/swiftparcel-backend/internal/payments"
	"github.com/swiftparcel/swiftparcel-backend/internal/services"
	"github.com/swiftparcel/swiftparcel-backend/pkg/utils"
)

// CreateCheckoutSession opens a hosted checkout session for a parcel and
// returns the provider's redirect URL.
func CreateCheckoutSession(db *gorm.DB, provider payments.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Cost        float64 `json:"cost" binding:"required,gt=0"`
			ParcelName  string  `json:"parcelName" binding:"required"`
			ParcelID    uint    `json:"parcelId" binding:"required"`
			SenderEmail string  `json:"senderEmail" binding:"required,email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Verify the parcel exists before sending the caller off to pay
		var parcel models.Parcel
		if err := db.First(&parcel, "id = ?", input.ParcelID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parcel ID"})
			return
		}

		sess, err := provider.CreateCheckoutSession(c.Request.Context(), payments.CheckoutParams{
			Cost:        input.Cost,
			ParcelID:    input.ParcelID,
			ParcelName:  input.ParcelName,
			SenderEmail: input.SenderEmail,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session"})
			return
		}

		c.JSON(200, gin.H{"url": sess.URL})
	}
}

// ConfirmPayment reconciles a checkout session against local records.
//
// The call is client-triggered (page reload, retry, double-click all reach
// here), so it must be safe to invoke any number of times: the transaction
// id recorded from the session's payment intent is the idempotency key,
// backed by a unique index. The parcel update and the payment insert run
// in one store transaction; when a concurrent duplicate loses the insert
// race, its transaction rolls back and the winner's record is returned.
func ConfirmPayment(db *gorm.DB, provider payments.Provider, hub *services.Hub, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		sess, err := provider.RetrieveSession(c.Request.Context(), sessionID)
		if err != nil {
			log.WithError(err).WithField("sessionId", sessionID).Error("checkout session retrieval failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve checkout session"})
			return
		}

		transactionID := sess.PaymentIntentID

		// Idempotency fast path: this transaction was already recorded
		var existing models.Payment
		if err := db.Where("transaction_id = ?", transactionID).First(&existing).Error; err == nil {
			c.JSON(200, gin.H{
				"success":          true,
				"alreadyProcessed": true,
				"trackingId":       existing.TrackingID,
				"transactionId":    existing.TransactionID,
			})
			return
		}

		if !sess.Paid() {
			// Still pending or canceled upstream. Not an error: nothing
			// is written and the caller may come back later.
			c.JSON(200, gin.H{"success": false})
			return
		}

		parcelID, err := strconv.ParseUint(sess.Metadata["parcelId"], 10, 64)
		if err != nil {
			log.WithField("sessionId", sessionID).Error("checkout session has no usable parcelId metadata")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Checkout session metadata is missing the parcel reference"})
			return
		}

		trackingID := utils.GenerateTrackingID()

		payment := models.Payment{
			Amount:        float64(sess.AmountTotal) / 100,
			Currency:      sess.Currency,
			CustomerEmail: sess.CustomerEmail,
			ParcelID:      uint(parcelID),
			ParcelName:    sess.Metadata["parcelName"],
			TransactionID: transactionID,
			PaymentStatus: models.PaymentStatusPaid,
			PaidAt:        time.Now(),
			TrackingID:    trackingID,
		}

		var parcelRows int64
		txErr := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Parcel{}).
				Where("id = ?", parcelID).
				Updates(map[string]interface{}{
					"payment_status": models.PaymentStatusPaid,
					"tracking_id":    trackingID,
				})
			if res.Error != nil {
				return res.Error
			}
			parcelRows = res.RowsAffected

			return tx.Create(&payment).Error
		})

		if txErr != nil {
			if isDuplicateKey(txErr) {
				// Lost a concurrent confirmation race; the whole
				// transaction rolled back, so the winner's parcel update
				// stands and its record is the answer.
				if err := db.Where("transaction_id = ?", transactionID).First(&existing).Error; err == nil {
					c.JSON(200, gin.H{
						"success":          true,
						"alreadyProcessed": true,
						"trackingId":       existing.TrackingID,
						"transactionId":    existing.TransactionID,
					})
					return
				}
			}
			log.WithError(txErr).WithField("transactionId", transactionID).Error("payment confirmation write failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}

		log.WithFields(logrus.Fields{
			"transactionId": transactionID,
			"parcelId":      parcelID,
			"trackingId":    trackingID,
		}).Info("payment confirmed")

		if hub != nil {
			hub.BroadcastParcelEvent(services.ParcelEvent{
				Type:       "parcel.paid",
				ParcelID:   uint(parcelID),
				TrackingID: trackingID,
				Status:     models.PaymentStatusPaid,
			})
		}

		c.JSON(200, gin.H{
			"success":        true,
			"trackingId":     trackingID,
			"transactionId":  transactionID,
			"parcelModified": parcelRows,
			"paymentId":      payment.ID,
		})
	}
}

// GetPayments lists the caller's payment history. The email filter must
// match the verified token claim: one principal cannot read another's
// records.
func GetPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimEmail := c.GetString("userEmail")

		email := c.Query("email")
		if email == "" {
			email = claimEmail
		}
		if email != claimEmail {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden access"})
			return
		}

		var records []models.Payment
		if err := db.Where("customer_email = ?", email).Order("paid_at desc").Find(&records).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payments"})
			return
		}

		c.JSON(200, records)
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
