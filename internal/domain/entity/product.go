package entity

import (
	"encoding/json"
	"time"

	"github.com/sdp-labs/pos-api/pkg/money"
	"gorm.io/gorm"
)

// Product is a sellable catalog item. Its price and tax rate are copied onto
// order items at add-time, so editing a product never rewrites past orders.
type Product struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Price      int64          `gorm:"not null" json:"-"`
	MerchantID int64          `gorm:"not null;index" json:"merchantId"`
	TaxRateID  *string        `gorm:"size:36" json:"taxRateId,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Variations []ProductVariation `gorm:"foreignKey:ProductID" json:"variations"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: money.ToDecimal(p.Price),
	})
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductVariation is a priced modifier offered for a product (e.g. a size),
// additive to the base price.
type ProductVariation struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	PriceOffset int64          `gorm:"default:0" json:"-"`
	ProductID   int64          `gorm:"not null;index" json:"productId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (v ProductVariation) MarshalJSON() ([]byte, error) {
	type Alias ProductVariation
	return json.Marshal(&struct {
		Alias
		PriceOffset float64 `json:"priceOffset"`
	}{
		Alias:       Alias(v),
		PriceOffset: money.ToDecimal(v.PriceOffset),
	})
}

// TableName returns the table name for the ProductVariation model
func (ProductVariation) TableName() string {
	return "product_variations"
}
