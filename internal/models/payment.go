package models

import "time"

// Payment is append-only: one record per completed checkout transaction.
// TransactionID carries a unique index so a duplicate confirmation can
// never insert a second record for the same charge.
type Payment struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Amount        float64   `gorm:"column:amount;not null" json:"amount"`
	Currency      string    `gorm:"column:currency;not null" json:"currency"`
	CustomerEmail string    `gorm:"column:customer_email;index" json:"customerEmail"`
	ParcelID      uint      `gorm:"column:parcel_id" json:"parcelId"`
	ParcelName    string    `gorm:"column:parcel_name" json:"parcelName"`
	TransactionID string    `gorm:"column:transaction_id;uniqueIndex;not null" json:"transactionId"`
	PaymentStatus string    `gorm:"column:payment_status;not null" json:"paymentStatus"`
	PaidAt        time.Time `gorm:"column:paid_at" json:"paidAt"`
	TrackingID    string    `gorm:"column:tracking_id" json:"trackingId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}
