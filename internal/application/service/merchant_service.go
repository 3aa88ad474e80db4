package service

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// MerchantService handles merchant profile management.
type MerchantService struct {
	merchantRepo repository.MerchantRepository
}

// NewMerchantService creates a new merchant service
func NewMerchantService(merchantRepo repository.MerchantRepository) *MerchantService {
	return &MerchantService{merchantRepo: merchantRepo}
}

// GetMerchant returns a merchant by ID.
func (s *MerchantService) GetMerchant(ctx context.Context, id int64) (*entity.Merchant, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, apperror.NewNotFoundError("Merchant")
	}
	return merchant, nil
}

// UpdateMerchantInput represents the merchant update input
type UpdateMerchantInput struct {
	Name        *string
	Address     *string
	ContactInfo *string
}

// UpdateMerchant applies a partial update to a merchant profile.
func (s *MerchantService) UpdateMerchant(ctx context.Context, id int64, input *UpdateMerchantInput) (*entity.Merchant, error) {
	merchant, err := s.GetMerchant(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		merchant.Name = *input.Name
	}
	if input.Address != nil {
		merchant.Address = *input.Address
	}
	if input.ContactInfo != nil {
		merchant.ContactInfo = *input.ContactInfo
	}

	if err := s.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

// ListMerchants returns all merchants (super admin only).
func (s *MerchantService) ListMerchants(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Merchant, int64, error) {
	return s.merchantRepo.List(ctx, params, search)
}
