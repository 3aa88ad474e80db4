package service

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	infraRepo "github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// ProductService handles catalog management. Products carry their tax rate
// by reference; prices are snapshotted onto orders at add-time, so catalog
// edits never touch past sales.
type ProductService struct {
	productRepo   repository.ProductRepository
	variationRepo repository.ProductVariationRepository
	taxRateRepo   repository.TaxRateRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	variationRepo repository.ProductVariationRepository,
	taxRateRepo repository.TaxRateRepository,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		variationRepo: variationRepo,
		taxRateRepo:   taxRateRepo,
	}
}

// VariationInput represents a product variation input
type VariationInput struct {
	Name        string
	PriceOffset int64
}

// CreateProductInput represents the product creation input
type CreateProductInput struct {
	Name       string
	Price      int64
	TaxRateID  *string
	Variations []VariationInput
}

// CreateProduct creates a product with its variations.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	if input.TaxRateID != nil {
		if err := s.checkTaxRate(ctx, *input.TaxRateID, merchantID); err != nil {
			return nil, err
		}
	}

	product := &entity.Product{
		Name:       input.Name,
		Price:      input.Price,
		MerchantID: merchantID,
		TaxRateID:  input.TaxRateID,
	}
	for _, v := range input.Variations {
		product.Variations = append(product.Variations, entity.ProductVariation{
			Name:        v.Name,
			PriceOffset: v.PriceOffset,
		})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a product with its variations.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the product update input
type UpdateProductInput struct {
	Name      *string
	Price     *int64
	TaxRateID *string
}

// UpdateProduct applies a partial update to a product.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.TaxRateID != nil {
		if *input.TaxRateID == "" {
			product.TaxRateID = nil
		} else {
			if err := s.checkTaxRate(ctx, *input.TaxRateID, product.MerchantID); err != nil {
				return nil, err
			}
			product.TaxRateID = input.TaxRateID
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns the merchant's products with pagination and search.
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, 0, apperror.NewBadRequestError("Merchant context required")
	}
	return s.productRepo.List(ctx, merchantID, params, search, false)
}

// AddVariation attaches a new variation to a product.
func (s *ProductService) AddVariation(ctx context.Context, productID int64, input *VariationInput) (*entity.ProductVariation, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	variation := &entity.ProductVariation{
		Name:        input.Name,
		PriceOffset: input.PriceOffset,
		ProductID:   productID,
	}
	if err := s.variationRepo.Create(ctx, variation); err != nil {
		return nil, err
	}
	return variation, nil
}

// RemoveVariation deletes a variation from a product.
func (s *ProductService) RemoveVariation(ctx context.Context, productID, variationID int64) error {
	variation, err := s.variationRepo.GetByID(ctx, variationID)
	if err != nil {
		return err
	}
	if variation == nil || variation.ProductID != productID {
		return apperror.NewNotFoundError("Product variation")
	}
	return s.variationRepo.Delete(ctx, variationID)
}

func (s *ProductService) checkTaxRate(ctx context.Context, taxRateID string, merchantID int64) error {
	taxRate, err := s.taxRateRepo.GetByID(ctx, taxRateID)
	if err != nil {
		return err
	}
	if taxRate == nil || taxRate.MerchantID != merchantID {
		return apperror.NewNotFoundError("Tax rate")
	}
	return nil
}
