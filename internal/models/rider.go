package models

import "time"

const (
	RiderStatusPending  = "pending"
	RiderStatusApproved = "approved"
	RiderStatusRejected = "rejected"
)

type Rider struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Name             string    `gorm:"column:name;not null" json:"name"`
	Email            string    `gorm:"column:email;not null;index" json:"email"`
	Age              int       `gorm:"column:age" json:"age,omitempty"`
	Region           string    `gorm:"column:region" json:"region,omitempty"`
	District         string    `gorm:"column:district" json:"district,omitempty"`
	Phone            string    `gorm:"column:phone" json:"phone,omitempty"`
	NID              string    `gorm:"column:nid" json:"nid,omitempty"`
	BikeBrand        string    `gorm:"column:bike_brand" json:"bikeBrand,omitempty"`
	BikeRegistration string    `gorm:"column:bike_registration" json:"bikeRegistration,omitempty"`
	Status           string    `gorm:"column:status;not null;default:pending" json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (Rider) TableName() string {
	return "riders"
}
