package entity

import (
	"encoding/json"
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/pkg/money"
)

// Refund records a full-order refund with a per-payment breakdown.
type Refund struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	OrderID     int64             `gorm:"not null;index" json:"orderId"`
	TotalAmount int64             `gorm:"not null" json:"-"`
	Status      enum.RefundStatus `gorm:"size:20;not null" json:"status"`
	Reason      string            `gorm:"size:500" json:"reason,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`

	Breakdown []RefundBreakdown `gorm:"foreignKey:RefundID" json:"refundBreakdown"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (r Refund) MarshalJSON() ([]byte, error) {
	type Alias Refund
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"totalAmount"`
	}{
		Alias:       Alias(r),
		TotalAmount: money.ToDecimal(r.TotalAmount),
	})
}

// TableName returns the table name for the Refund model
func (Refund) TableName() string {
	return "refunds"
}

// RefundBreakdown is one payment's share of a refund.
type RefundBreakdown struct {
	ID                int64   `gorm:"primaryKey" json:"-"`
	RefundID          int64   `gorm:"not null;index" json:"-"`
	OriginalPaymentID string  `gorm:"size:64;not null" json:"originalPaymentId"`
	PaymentType       string  `gorm:"size:20;not null" json:"paymentType"`
	Amount            int64   `gorm:"not null" json:"-"`
	RefundStatus      string  `gorm:"size:20;not null" json:"refundStatus"`
	ProviderRefundID  *string `gorm:"size:255" json:"providerRefundId,omitempty"`
}

// MarshalJSON converts cent amounts to decimal for API responses
func (b RefundBreakdown) MarshalJSON() ([]byte, error) {
	type Alias RefundBreakdown
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(b),
		Amount: money.ToDecimal(b.Amount),
	})
}

// TableName returns the table name for the RefundBreakdown model
func (RefundBreakdown) TableName() string {
	return "refund_breakdowns"
}
