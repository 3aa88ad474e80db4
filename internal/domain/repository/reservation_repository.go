package repository

import (
	"context"
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
)

// ReservationRepository defines the interface for reservation data operations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id int64) (*entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	// ListByDay returns the merchant's reservations whose appointment time
	// falls on the given calendar day, ordered by appointment time.
	ListByDay(ctx context.Context, merchantID int64, day time.Time) ([]entity.Reservation, error)
}
