package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
)

type refundRepository struct {
	db *gorm.DB
}

// NewRefundRepository creates a new refund repository
func NewRefundRepository(db *gorm.DB) domainRepo.RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, refund *entity.Refund) error {
	// FullSaveAssociations persists the breakdown rows with the refund
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Create(refund).Error
}

func (r *refundRepository) Update(ctx context.Context, refund *entity.Refund) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(refund).Error
}

func (r *refundRepository) GetByID(ctx context.Context, id int64) (*entity.Refund, error) {
	var refund entity.Refund
	err := r.db.WithContext(ctx).
		Preload("Breakdown").
		First(&refund, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &refund, err
}

func (r *refundRepository) GetByOrderID(ctx context.Context, orderID int64) ([]entity.Refund, error) {
	var refunds []entity.Refund
	err := r.db.WithContext(ctx).
		Preload("Breakdown").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&refunds).Error
	return refunds, err
}
