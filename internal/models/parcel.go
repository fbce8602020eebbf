package models

import "time"

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusDelivered = "delivered"
)

type Parcel struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	SenderName      string    `gorm:"column:sender_name" json:"senderName"`
	SenderEmail     string    `gorm:"column:sender_email;not null;index" json:"senderEmail"`
	SenderAddress   string    `gorm:"column:sender_address" json:"senderAddress,omitempty"`
	ReceiverName    string    `gorm:"column:receiver_name" json:"receiverName,omitempty"`
	ReceiverAddress string    `gorm:"column:receiver_address" json:"receiverAddress,omitempty"`
	Phone           string    `gorm:"column:phone" json:"phone,omitempty"`
	ParcelName      string    `gorm:"column:parcel_name;not null" json:"parcelName"`
	ParcelType      string    `gorm:"column:parcel_type" json:"parcelType,omitempty"`
	Cost            float64   `gorm:"column:cost;not null" json:"cost"`
	PaymentStatus   string    `gorm:"column:payment_status;not null;default:unpaid" json:"paymentStatus"`
	DeliveryStatus  string    `gorm:"column:delivery_status;not null;default:pending" json:"deliveryStatus"`
	TrackingID      *string   `gorm:"column:tracking_id" json:"trackingId,omitempty"`
	PhotoURL        string    `gorm:"column:photo_url" json:"photoUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Parcel) TableName() string {
	return "parcels"
}
