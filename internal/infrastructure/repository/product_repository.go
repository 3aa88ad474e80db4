package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Scopes(MerchantScope(ctx)).
		Preload("Variations").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, merchantID int64, params *pagination.PaginationParams, search string, skipMerchantFilter bool) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if !skipMerchantFilter {
		query = query.Where("merchant_id = ?", merchantID)
	}

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Variations").
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

type productVariationRepository struct {
	db *gorm.DB
}

// NewProductVariationRepository creates a new product variation repository
func NewProductVariationRepository(db *gorm.DB) domainRepo.ProductVariationRepository {
	return &productVariationRepository{db: db}
}

func (r *productVariationRepository) Create(ctx context.Context, variation *entity.ProductVariation) error {
	return r.db.WithContext(ctx).Create(variation).Error
}

func (r *productVariationRepository) GetByID(ctx context.Context, id int64) (*entity.ProductVariation, error) {
	var variation entity.ProductVariation
	err := r.db.WithContext(ctx).First(&variation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &variation, err
}

func (r *productVariationRepository) Update(ctx context.Context, variation *entity.ProductVariation) error {
	return r.db.WithContext(ctx).Save(variation).Error
}

func (r *productVariationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductVariation{}, "id = ?", id).Error
}

func (r *productVariationRepository) GetByProductID(ctx context.Context, productID int64) ([]entity.ProductVariation, error) {
	var variations []entity.ProductVariation
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&variations).Error
	return variations, err
}
