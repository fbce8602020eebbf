package models

import "time"

const (
	RoleUser  = "user"
	RoleRider = "rider"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Email          string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Name           string    `gorm:"column:name" json:"name"`
	Photo          string    `gorm:"column:photo" json:"photo,omitempty"`
	Role           string    `gorm:"column:role;not null;default:user" json:"role"`
	LastLoggedInAt time.Time `gorm:"column:last_logged_in_at" json:"lastLoggedInAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
