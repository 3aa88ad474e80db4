package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

type giftCardRepository struct {
	db *gorm.DB
}

// NewGiftCardRepository creates a new gift card repository
func NewGiftCardRepository(db *gorm.DB) domainRepo.GiftCardRepository {
	return &giftCardRepository{db: db}
}

func (r *giftCardRepository) Create(ctx context.Context, card *entity.GiftCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *giftCardRepository) GetByCode(ctx context.Context, code string) (*entity.GiftCard, error) {
	var card entity.GiftCard
	err := r.db.WithContext(ctx).First(&card, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *giftCardRepository) Update(ctx context.Context, card *entity.GiftCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *giftCardRepository) List(ctx context.Context, merchantID int64, params *pagination.PaginationParams, activeOnly bool) ([]entity.GiftCard, int64, error) {
	var cards []entity.GiftCard
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GiftCard{}).
		Where("merchant_id = ?", merchantID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&cards).Error

	return cards, total, err
}
