package entity

import (
	"encoding/json"
	"time"

	"github.com/sdp-labs/pos-api/pkg/money"
)

// GiftCard is a stored-value card keyed by its Luhn-checked code. A card is
// deactivated automatically when its balance reaches zero.
type GiftCard struct {
	Code           string     `gorm:"size:40;primaryKey" json:"code"`
	InitialBalance int64      `gorm:"not null" json:"-"`
	CurrentBalance int64      `gorm:"not null" json:"-"`
	Active         bool       `gorm:"default:true" json:"active"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	MerchantID     int64      `gorm:"not null;index" json:"merchantId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (g GiftCard) MarshalJSON() ([]byte, error) {
	type Alias GiftCard
	return json.Marshal(&struct {
		Alias
		InitialBalance float64 `json:"initialBalance"`
		CurrentBalance float64 `json:"currentBalance"`
	}{
		Alias:          Alias(g),
		InitialBalance: money.ToDecimal(g.InitialBalance),
		CurrentBalance: money.ToDecimal(g.CurrentBalance),
	})
}

// TableName returns the table name for the GiftCard model
func (GiftCard) TableName() string {
	return "gift_cards"
}
