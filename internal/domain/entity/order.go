package entity

import (
	"encoding/json"
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/pkg/money"
	"gorm.io/gorm"
)

// Order is the aggregate a POS sale revolves around. Monetary columns are
// int64 cents, excluded from JSON and re-emitted as 2-decimal numbers by the
// custom marshaler. The server is authoritative for subtotal/taxAmount/
// discountAmount/total; they are recomputed and persisted after every
// item or discount mutation.
type Order struct {
	ID             int64            `gorm:"primaryKey" json:"id"`
	MerchantID     int64            `gorm:"not null;index" json:"merchantId"`
	Status         enum.OrderStatus `gorm:"size:20;not null" json:"status"`
	DiscountID     *string          `gorm:"size:36" json:"discountId,omitempty"`
	Subtotal       int64            `gorm:"default:0" json:"-"`
	TaxAmount      int64            `gorm:"default:0" json:"-"`
	DiscountAmount int64            `gorm:"default:0" json:"-"`
	Total          int64            `gorm:"default:0" json:"-"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal       float64 `json:"subtotal"`
		TaxAmount      float64 `json:"taxAmount"`
		DiscountAmount float64 `json:"discountAmount"`
		Total          float64 `json:"total"`
	}{
		Alias:          Alias(o),
		Subtotal:       money.ToDecimal(o.Subtotal),
		TaxAmount:      money.ToDecimal(o.TaxAmount),
		DiscountAmount: money.ToDecimal(o.DiscountAmount),
		Total:          money.ToDecimal(o.Total),
	})
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Price, tax rate, variation names and
// offsets are copied from the product at add-time so later catalog edits
// never rewrite historical orders.
type OrderItem struct {
	ID                    int64          `gorm:"primaryKey" json:"id"`
	OrderID               int64          `gorm:"not null;index" json:"orderId"`
	ItemID                int64          `gorm:"not null" json:"itemId"`
	Name                  string         `gorm:"size:255;not null" json:"name"`
	Price                 int64          `gorm:"not null" json:"-"`
	Quantity              int            `gorm:"not null" json:"quantity"`
	TaxRateID             *string        `gorm:"size:36" json:"taxRateId,omitempty"`
	AppliedTaxRate        float64        `gorm:"type:numeric(10,4);default:0" json:"appliedTaxRate"`
	AppliedDiscountAmount int64          `gorm:"default:0" json:"-"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	Variations []OrderItemVariation `gorm:"foreignKey:OrderItemID" json:"variations"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (it OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		Price                 float64 `json:"price"`
		AppliedDiscountAmount float64 `json:"appliedDiscountAmount"`
	}{
		Alias:                 Alias(it),
		Price:                 money.ToDecimal(it.Price),
		AppliedDiscountAmount: money.ToDecimal(it.AppliedDiscountAmount),
	})
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemVariation is a priced modifier attached to an order item,
// additive to the item's unit price.
type OrderItemVariation struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	OrderItemID        int64     `gorm:"not null;index" json:"-"`
	ProductVariationID *int64    `json:"productVariationId,omitempty"`
	Name               string    `gorm:"size:255" json:"name"`
	PriceOffset        int64     `gorm:"not null" json:"-"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (v OrderItemVariation) MarshalJSON() ([]byte, error) {
	type Alias OrderItemVariation
	return json.Marshal(&struct {
		Alias
		PriceOffset float64 `json:"priceOffset"`
	}{
		Alias:       Alias(v),
		PriceOffset: money.ToDecimal(v.PriceOffset),
	})
}

// TableName returns the table name for the OrderItemVariation model
func (OrderItemVariation) TableName() string {
	return "order_item_variations"
}
