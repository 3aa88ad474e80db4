package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// GiftCardRepository defines the interface for gift card data operations
type GiftCardRepository interface {
	Create(ctx context.Context, card *entity.GiftCard) error
	GetByCode(ctx context.Context, code string) (*entity.GiftCard, error)
	Update(ctx context.Context, card *entity.GiftCard) error
	List(ctx context.Context, merchantID int64, params *pagination.PaginationParams, activeOnly bool) ([]entity.GiftCard, int64, error)
}
