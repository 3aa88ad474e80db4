package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/pkg/money"
	"gorm.io/gorm"
)

// Discount is a promotion configured per merchant. PERCENTAGE values are
// whole percents (15 == 15% off); FIXED_AMOUNT values are stored in cents.
// ORDER-scope discounts reduce the order subtotal; PRODUCT-scope discounts
// attach to matching line items when they are added.
type Discount struct {
	ID         string             `gorm:"size:36;primaryKey" json:"id"`
	Code       string             `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Value      int64              `gorm:"not null" json:"-"`
	Type       enum.DiscountType  `gorm:"size:20;not null" json:"type"`
	Scope      enum.DiscountScope `gorm:"size:20;not null" json:"scope"`
	ProductID  *int64             `json:"productId,omitempty"`
	MerchantID int64              `gorm:"not null;index" json:"merchantId"`
	ValidFrom  *time.Time         `json:"validFrom,omitempty"`
	ValidTo    *time.Time         `json:"validTo,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// MarshalJSON emits Value as a percent for PERCENTAGE discounts and as a
// decimal amount for FIXED_AMOUNT ones.
func (d Discount) MarshalJSON() ([]byte, error) {
	type Alias Discount
	value := float64(d.Value)
	if d.Type == enum.DiscountTypeFixedAmount {
		value = money.ToDecimal(d.Value)
	}
	return json.Marshal(&struct {
		Alias
		Value float64 `json:"value"`
	}{
		Alias: Alias(d),
		Value: value,
	})
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// IsValidAt reports whether the discount's validity window covers t.
func (d *Discount) IsValidAt(t time.Time) bool {
	if d.ValidFrom != nil && t.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && t.After(*d.ValidTo) {
		return false
	}
	return true
}

// AmountFor computes the discount in cents against a base amount in cents.
// The result never exceeds the base.
func (d *Discount) AmountFor(base int64) int64 {
	var amount int64
	switch d.Type {
	case enum.DiscountTypePercentage:
		amount = money.ApplyRate(base, float64(d.Value)/100)
	case enum.DiscountTypeFixedAmount:
		amount = d.Value
	}
	return money.Min(money.MaxZero(amount), base)
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}
