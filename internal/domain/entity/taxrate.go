package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxRate is a named fractional rate (0.21 == 21%) configured per merchant.
type TaxRate struct {
	ID         string    `gorm:"size:36;primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Rate       float64   `gorm:"type:numeric(10,4);not null" json:"rate"`
	MerchantID int64     `gorm:"not null;index" json:"merchantId"`
	Active     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID before creating a new tax rate
func (t *TaxRate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "tax_rates"
}
