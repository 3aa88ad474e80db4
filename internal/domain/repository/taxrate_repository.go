package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
)

// TaxRateRepository defines the interface for tax rate data operations
type TaxRateRepository interface {
	Create(ctx context.Context, taxRate *entity.TaxRate) error
	GetByID(ctx context.Context, id string) (*entity.TaxRate, error)
	Update(ctx context.Context, taxRate *entity.TaxRate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, merchantID int64) ([]entity.TaxRate, error)
}
