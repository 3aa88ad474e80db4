package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
)

// ReservationHandler handles appointment HTTP requests
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Create books an appointment
func (h *ReservationHandler) Create(c *gin.Context) {
	var req request.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), &service.CreateReservationInput{
		ServiceID:       req.ServiceID,
		ServiceName:     req.ServiceName,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		AppointmentTime: req.AppointmentTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Reservation created", reservation)
}

// Update reschedules or edits a confirmed reservation
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	var req request.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reservation, err := h.reservationService.UpdateReservation(c.Request.Context(), id, &service.UpdateReservationInput{
		AppointmentTime: req.AppointmentTime,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation updated", reservation)
}

// Cancel cancels a reservation. Cancelling twice is a no-op.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation cancelled", reservation)
}

// List returns reservations for a day (defaults to today)
func (h *ReservationHandler) List(c *gin.Context) {
	day := time.Now()
	if s := c.Query("date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	reservations, err := h.reservationService.ListReservations(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservations retrieved", reservations)
}
