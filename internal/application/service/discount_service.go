package service

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	infraRepo "github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
)

// DiscountService handles promotion configuration.
type DiscountService struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository, productRepo repository.ProductRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo, productRepo: productRepo}
}

// CreateDiscountInput represents the discount creation input
type CreateDiscountInput struct {
	Code      string
	Value     int64
	Type      enum.DiscountType
	Scope     enum.DiscountScope
	ProductID *int64
	ValidFrom *string
	ValidTo   *string
}

// CreateDiscount creates a discount. PERCENTAGE values are whole percents;
// FIXED_AMOUNT values are in cents. PRODUCT-scope discounts must name a
// product belonging to the merchant.
func (s *DiscountService) CreateDiscount(ctx context.Context, input *CreateDiscountInput) (*entity.Discount, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown discount type")
	}
	if !input.Scope.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown discount scope")
	}
	if input.Value <= 0 {
		return nil, apperror.NewBadRequestError("Value must be positive")
	}
	if input.Type == enum.DiscountTypePercentage && input.Value > 100 {
		return nil, apperror.NewBadRequestError("Percentage cannot exceed 100")
	}

	if input.Scope == enum.DiscountScopeProduct {
		if input.ProductID == nil {
			return nil, apperror.NewBadRequestError("Product discounts require a product ID")
		}
		product, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
	}

	discount := &entity.Discount{
		Code:       input.Code,
		Value:      input.Value,
		Type:       input.Type,
		Scope:      input.Scope,
		ProductID:  input.ProductID,
		MerchantID: merchantID,
	}
	if from, err := parseTimePtr(input.ValidFrom); err != nil {
		return nil, apperror.NewBadRequestError("Invalid validFrom timestamp")
	} else {
		discount.ValidFrom = from
	}
	if to, err := parseTimePtr(input.ValidTo); err != nil {
		return nil, apperror.NewBadRequestError("Invalid validTo timestamp")
	} else {
		discount.ValidTo = to
	}

	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// GetDiscount returns a discount by ID.
func (s *DiscountService) GetDiscount(ctx context.Context, id string) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// DeleteDiscount removes a discount. Orders that already applied it keep
// their computed amounts.
func (s *DiscountService) DeleteDiscount(ctx context.Context, id string) error {
	if _, err := s.GetDiscount(ctx, id); err != nil {
		return err
	}
	return s.discountRepo.Delete(ctx, id)
}

// ListDiscounts returns the merchant's discounts, optionally only those
// currently within their validity window.
func (s *DiscountService) ListDiscounts(ctx context.Context, activeOnly bool) ([]entity.Discount, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	return s.discountRepo.List(ctx, merchantID, activeOnly)
}
