package entity

import (
	"encoding/json"
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/pkg/money"
)

// Payment records one tender against an order. Amount is the portion applied
// to the order's owed total; tip rides on top and never counts toward it.
// CashReceived is only meaningful for CASH payments and may exceed Amount,
// the difference being change due.
type Payment struct {
	ID                int64              `gorm:"primaryKey" json:"id"`
	OrderID           int64              `gorm:"not null;index" json:"orderId"`
	ProviderPaymentID *string            `gorm:"size:255;index" json:"providerPaymentId,omitempty"`
	Type              enum.PaymentType   `gorm:"size:20;not null" json:"type"`
	Amount            int64              `gorm:"not null" json:"-"`
	CashReceived      int64              `gorm:"default:0" json:"-"`
	Tip               int64              `gorm:"default:0" json:"-"`
	Status            enum.PaymentStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount       float64 `json:"amount"`
		CashReceived float64 `json:"cashReceived"`
		Tip          float64 `json:"tip"`
	}{
		Alias:        Alias(p),
		Amount:       money.ToDecimal(p.Amount),
		CashReceived: money.ToDecimal(p.CashReceived),
		Tip:          money.ToDecimal(p.Tip),
	})
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
