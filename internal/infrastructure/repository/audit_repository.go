package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new action log repository
func NewAuditRepository(db *gorm.DB) domainRepo.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *entity.ActionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) List(ctx context.Context, merchantID *int64, params *pagination.PaginationParams, actionType string) ([]entity.ActionLog, int64, error) {
	var logs []entity.ActionLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ActionLog{})
	if merchantID != nil {
		query = query.Where("merchant_id = ?", *merchantID)
	}
	if actionType != "" {
		query = query.Where("action_type = ?", actionType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}
