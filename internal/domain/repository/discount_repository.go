package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
)

// DiscountRepository defines the interface for discount data operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id string) (*entity.Discount, error)
	Update(ctx context.Context, discount *entity.Discount) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, merchantID int64, activeOnly bool) ([]entity.Discount, error)
}
