package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID loads the product with its variations.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, merchantID int64, params *pagination.PaginationParams, search string, skipMerchantFilter bool) ([]entity.Product, int64, error)
}

// ProductVariationRepository defines the interface for product variation operations
type ProductVariationRepository interface {
	Create(ctx context.Context, variation *entity.ProductVariation) error
	GetByID(ctx context.Context, id int64) (*entity.ProductVariation, error)
	Update(ctx context.Context, variation *entity.ProductVariation) error
	Delete(ctx context.Context, id int64) error
	GetByProductID(ctx context.Context, productID int64) ([]entity.ProductVariation, error)
}
