package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// MerchantRepository defines the interface for merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entity.Merchant) error
	GetByID(ctx context.Context, id int64) (*entity.Merchant, error)
	Update(ctx context.Context, merchant *entity.Merchant) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Merchant, int64, error)
}
