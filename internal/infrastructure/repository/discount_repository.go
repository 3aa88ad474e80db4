package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id string) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}

func (r *discountRepository) Update(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *discountRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Discount{}, "id = ?", id).Error
}

func (r *discountRepository) List(ctx context.Context, merchantID int64, activeOnly bool) ([]entity.Discount, error) {
	var discounts []entity.Discount
	query := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID)
	if activeOnly {
		now := time.Now()
		query = query.
			Where("valid_from IS NULL OR valid_from <= ?", now).
			Where("valid_to IS NULL OR valid_to >= ?", now)
	}
	err := query.Order("code ASC").Find(&discounts).Error
	return discounts, err
}
