package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
)

type taxRateRepository struct {
	db *gorm.DB
}

// NewTaxRateRepository creates a new tax rate repository
func NewTaxRateRepository(db *gorm.DB) domainRepo.TaxRateRepository {
	return &taxRateRepository{db: db}
}

func (r *taxRateRepository) Create(ctx context.Context, taxRate *entity.TaxRate) error {
	return r.db.WithContext(ctx).Create(taxRate).Error
}

func (r *taxRateRepository) GetByID(ctx context.Context, id string) (*entity.TaxRate, error) {
	var taxRate entity.TaxRate
	err := r.db.WithContext(ctx).First(&taxRate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &taxRate, err
}

func (r *taxRateRepository) Update(ctx context.Context, taxRate *entity.TaxRate) error {
	return r.db.WithContext(ctx).Save(taxRate).Error
}

func (r *taxRateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxRate{}, "id = ?", id).Error
}

func (r *taxRateRepository) List(ctx context.Context, merchantID int64) ([]entity.TaxRate, error) {
	var taxRates []entity.TaxRate
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("name ASC").
		Find(&taxRates).Error
	return taxRates, err
}
