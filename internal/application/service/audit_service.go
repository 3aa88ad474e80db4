package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// AuditService records mutating operations. Failures to write an audit row
// are logged but never fail the operation being audited.
type AuditService struct {
	auditRepo repository.AuditRepository
	logger    *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger.Named("audit-service"),
	}
}

// Record writes an action log entry. before and after are snapshotted as
// JSON; nil snapshots are stored as empty.
func (s *AuditService) Record(ctx context.Context, actorUserID *int64, merchantID *int64, actionType, targetType string, targetID *int64, before, after interface{}) {
	log := &entity.ActionLog{
		ActorUserID: actorUserID,
		ActionType:  actionType,
		TargetType:  targetType,
		TargetID:    targetID,
		MerchantID:  merchantID,
	}

	if before != nil {
		if data, err := json.Marshal(before); err == nil {
			log.DataBefore = data
		}
	}
	if after != nil {
		if data, err := json.Marshal(after); err == nil {
			log.DataAfter = data
		}
	}

	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Error("failed to write action log",
			zap.String("action_type", actionType),
			zap.String("target_type", targetType),
			zap.Error(err),
		)
	}
}

// List returns action log entries, newest first.
func (s *AuditService) List(ctx context.Context, merchantID *int64, params *pagination.PaginationParams, actionType string) ([]entity.ActionLog, int64, error) {
	return s.auditRepo.List(ctx, merchantID, params, actionType)
}
