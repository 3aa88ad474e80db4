package enum

// PaymentType distinguishes the tender used for a payment.
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "CASH"
	PaymentTypeGiftCard PaymentType = "GIFT_CARD"
	PaymentTypeCard     PaymentType = "CARD"
)

// IsValid reports whether t is a known payment type.
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeGiftCard, PaymentTypeCard:
		return true
	}
	return false
}

// PaymentStatus tracks a payment through the provider flow. Cash and
// gift-card payments are SUCCEEDED immediately; card payments start at
// REQUIRES_ACTION and are advanced by provider webhooks.
type PaymentStatus string

const (
	PaymentStatusRequiresAction PaymentStatus = "REQUIRES_ACTION"
	PaymentStatusProcessing     PaymentStatus = "PROCESSING"
	PaymentStatusSucceeded      PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed         PaymentStatus = "FAILED"
	PaymentStatusCanceled       PaymentStatus = "CANCELED"
	PaymentStatusRefunded       PaymentStatus = "REFUNDED"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusRequiresAction, PaymentStatusProcessing,
		PaymentStatusSucceeded, PaymentStatusFailed,
		PaymentStatusCanceled, PaymentStatusRefunded:
		return true
	}
	return false
}
