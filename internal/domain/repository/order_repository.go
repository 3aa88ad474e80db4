package repository

import (
	"context"
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID loads the order with its items, variations and payments.
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, merchantID int64, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id int64, status enum.OrderStatus) error
	// UpdateTotals persists the recomputed cost columns in one statement.
	UpdateTotals(ctx context.Context, id int64, subtotal, taxAmount, discountAmount, total int64) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination         *pagination.PaginationParams
	Status             *enum.OrderStatus
	StartDate          *time.Time
	EndDate            *time.Time
	SortBy             string
	SortOrder          string
	SkipMerchantFilter bool // If true, returns orders across all merchants (for super-admin)
}

// OrderItemRepository defines the interface for order line item operations
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id int64) (*entity.OrderItem, error)
	Update(ctx context.Context, item *entity.OrderItem) error
	Delete(ctx context.Context, id int64) error
	GetByOrderID(ctx context.Context, orderID int64) ([]entity.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
