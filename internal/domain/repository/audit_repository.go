package repository

import (
	"context"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// AuditRepository defines the interface for action log operations
type AuditRepository interface {
	Create(ctx context.Context, log *entity.ActionLog) error
	List(ctx context.Context, merchantID *int64, params *pagination.PaginationParams, actionType string) ([]entity.ActionLog, int64, error)
}
