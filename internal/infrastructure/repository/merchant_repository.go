package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) domainRepo.MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) Create(ctx context.Context, merchant *entity.Merchant) error {
	return r.db.WithContext(ctx).Create(merchant).Error
}

func (r *merchantRepository) GetByID(ctx context.Context, id int64) (*entity.Merchant, error) {
	var merchant entity.Merchant
	err := r.db.WithContext(ctx).First(&merchant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &merchant, err
}

func (r *merchantRepository) Update(ctx context.Context, merchant *entity.Merchant) error {
	return r.db.WithContext(ctx).Save(merchant).Error
}

func (r *merchantRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&entity.Merchant{}, "id = ?", id).Error
}

func (r *merchantRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Merchant, int64, error) {
	var merchants []entity.Merchant
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Merchant{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&merchants).Error

	return merchants, total, err
}
