package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
)

// RefundRepository defines the interface for refund data operations
type RefundRepository interface {
	// Create stores the refund with its breakdown entries.
	Create(ctx context.Context, refund *entity.Refund) error
	// Update saves the refund's status, total and breakdown entries.
	Update(ctx context.Context, refund *entity.Refund) error
	GetByID(ctx context.Context, id int64) (*entity.Refund, error)
	GetByOrderID(ctx context.Context, orderID int64) ([]entity.Refund, error)
}
