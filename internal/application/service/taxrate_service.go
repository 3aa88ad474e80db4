package service

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	infraRepo "github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
)

// TaxRateService handles per-merchant tax rate configuration.
type TaxRateService struct {
	taxRateRepo repository.TaxRateRepository
}

// NewTaxRateService creates a new tax rate service
func NewTaxRateService(taxRateRepo repository.TaxRateRepository) *TaxRateService {
	return &TaxRateService{taxRateRepo: taxRateRepo}
}

// CreateTaxRateInput represents the tax rate creation input
type CreateTaxRateInput struct {
	Name string
	Rate float64
}

// CreateTaxRate creates a tax rate. Rate is fractional: 0.21 is 21%.
func (s *TaxRateService) CreateTaxRate(ctx context.Context, input *CreateTaxRateInput) (*entity.TaxRate, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	if input.Rate < 0 || input.Rate > 1 {
		return nil, apperror.NewBadRequestError("Rate must be between 0 and 1")
	}

	taxRate := &entity.TaxRate{
		Name:       input.Name,
		Rate:       input.Rate,
		MerchantID: merchantID,
		Active:     true,
	}
	if err := s.taxRateRepo.Create(ctx, taxRate); err != nil {
		return nil, err
	}
	return taxRate, nil
}

// GetTaxRate returns a tax rate by ID.
func (s *TaxRateService) GetTaxRate(ctx context.Context, id string) (*entity.TaxRate, error) {
	taxRate, err := s.taxRateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if taxRate == nil {
		return nil, apperror.NewNotFoundError("Tax rate")
	}
	return taxRate, nil
}

// UpdateTaxRateInput represents the tax rate update input
type UpdateTaxRateInput struct {
	Name   *string
	Rate   *float64
	Active *bool
}

// UpdateTaxRate applies a partial update. Changing a rate only affects items
// added after the change; applied rates on order items are snapshots.
func (s *TaxRateService) UpdateTaxRate(ctx context.Context, id string, input *UpdateTaxRateInput) (*entity.TaxRate, error) {
	taxRate, err := s.GetTaxRate(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		taxRate.Name = *input.Name
	}
	if input.Rate != nil {
		if *input.Rate < 0 || *input.Rate > 1 {
			return nil, apperror.NewBadRequestError("Rate must be between 0 and 1")
		}
		taxRate.Rate = *input.Rate
	}
	if input.Active != nil {
		taxRate.Active = *input.Active
	}

	if err := s.taxRateRepo.Update(ctx, taxRate); err != nil {
		return nil, err
	}
	return taxRate, nil
}

// DeleteTaxRate removes a tax rate from the catalog.
func (s *TaxRateService) DeleteTaxRate(ctx context.Context, id string) error {
	if _, err := s.GetTaxRate(ctx, id); err != nil {
		return err
	}
	return s.taxRateRepo.Delete(ctx, id)
}

// ListTaxRates returns the merchant's tax rates.
func (s *TaxRateService) ListTaxRates(ctx context.Context) ([]entity.TaxRate, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	return s.taxRateRepo.List(ctx, merchantID)
}
