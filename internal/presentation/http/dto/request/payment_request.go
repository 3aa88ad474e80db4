package request

// PayRequest is the body for POST /orders/:id/pay. Amounts arrive as
// 2-decimal numbers and are converted to cents at the handler boundary.
type PayRequest struct {
	Type string `json:"type" binding:"required"`
	// Amount is the charge for CARD payments and the cash received for
	// CASH payments.
	Amount       float64 `json:"amount"`
	GiftCardCode string  `json:"giftCardCode"`
	Tip          float64 `json:"tip"`
}

// RefundRequest is the body for POST /orders/:id/refund
type RefundRequest struct {
	Reason string `json:"reason"`
}

// ProviderEventRequest is the body the card provider posts to the webhook.
type ProviderEventRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	Status          string `json:"status" binding:"required"`
}
