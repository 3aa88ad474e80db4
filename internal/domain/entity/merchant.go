package entity

import "time"

// Merchant is a business on the platform. All catalog, order, and payment
// data is scoped to a merchant.
type Merchant struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Address     string    `gorm:"size:255" json:"address,omitempty"`
	ContactInfo string    `gorm:"size:255" json:"contactInfo,omitempty"`
	OwnerID     int64     `gorm:"not null;index" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Merchant model
func (Merchant) TableName() string {
	return "merchants"
}
