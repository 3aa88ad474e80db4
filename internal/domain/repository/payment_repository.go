package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	// GetByProviderPaymentID resolves the payment a provider webhook refers to.
	GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	UpdateStatus(ctx context.Context, id int64, status enum.PaymentStatus) error
	GetByOrderID(ctx context.Context, orderID int64) ([]entity.Payment, error)
}
