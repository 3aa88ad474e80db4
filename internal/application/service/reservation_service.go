package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	infraRepo "github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
)

// ReservationService manages appointment bookings.
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	now             nowFunc
}

// NewReservationService creates a new reservation service
func NewReservationService(reservationRepo repository.ReservationRepository) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		now:             defaultNow,
	}
}

// CreateReservationInput represents the reservation creation input
type CreateReservationInput struct {
	ServiceID       *int64
	ServiceName     string
	CustomerName    string
	CustomerContact string
	AppointmentTime time.Time
}

// CreateReservation books an appointment. Past appointment times are
// rejected.
func (s *ReservationService) CreateReservation(ctx context.Context, input *CreateReservationInput) (*entity.Reservation, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	if input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if input.AppointmentTime.Before(s.now()) {
		return nil, apperror.NewBadRequestError("Appointment time cannot be in the past")
	}

	reservation := &entity.Reservation{
		MerchantID:      merchantID,
		ServiceID:       input.ServiceID,
		ServiceName:     input.ServiceName,
		CustomerName:    input.CustomerName,
		CustomerContact: input.CustomerContact,
		AppointmentTime: input.AppointmentTime,
		Status:          enum.ReservationStatusConfirmed,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateReservationInput represents the reservation update input
type UpdateReservationInput struct {
	AppointmentTime *time.Time
	CustomerName    *string
	CustomerContact *string
}

// UpdateReservation amends a CONFIRMED reservation. Cancelled reservations
// are immutable.
func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, input *UpdateReservationInput) (*entity.Reservation, error) {
	reservation, err := s.ownedReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != enum.ReservationStatusConfirmed {
		return nil, apperror.NewConflictError(fmt.Sprintf("Reservation in status %s cannot be updated", reservation.Status))
	}

	if input.AppointmentTime != nil {
		if input.AppointmentTime.Before(s.now()) {
			return nil, apperror.NewBadRequestError("Appointment time cannot be in the past")
		}
		reservation.AppointmentTime = *input.AppointmentTime
	}
	if input.CustomerName != nil {
		reservation.CustomerName = *input.CustomerName
	}
	if input.CustomerContact != nil {
		reservation.CustomerContact = *input.CustomerContact
	}

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// CancelReservation marks a reservation as CANCELLED.
func (s *ReservationService) CancelReservation(ctx context.Context, id int64) (*entity.Reservation, error) {
	reservation, err := s.ownedReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status == enum.ReservationStatusCancelled {
		return reservation, nil
	}

	reservation.Status = enum.ReservationStatusCancelled
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// ListReservations returns the merchant's reservations for a calendar day.
func (s *ReservationService) ListReservations(ctx context.Context, day time.Time) ([]entity.Reservation, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	return s.reservationRepo.ListByDay(ctx, merchantID, day)
}

// ownedReservation loads a reservation and verifies merchant ownership.
func (s *ReservationService) ownedReservation(ctx context.Context, id int64) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperror.NewNotFoundError("Reservation")
	}
	if merchantID, ok := infraRepo.GetMerchantID(ctx); ok && reservation.MerchantID != merchantID {
		return nil, apperror.NewNotFoundError("Reservation")
	}
	return reservation, nil
}
