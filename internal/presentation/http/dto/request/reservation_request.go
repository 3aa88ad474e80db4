package request

import "time"

// CreateReservationRequest is the body for POST /reservations
type CreateReservationRequest struct {
	ServiceID       *int64    `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
	CustomerName    string    `json:"customerName" binding:"required"`
	CustomerContact string    `json:"customerContact"`
	AppointmentTime time.Time `json:"appointmentTime" binding:"required"`
}

// UpdateReservationRequest is the body for PUT /reservations/:id
type UpdateReservationRequest struct {
	AppointmentTime *time.Time `json:"appointmentTime"`
	CustomerName    *string    `json:"customerName"`
	CustomerContact *string    `json:"customerContact"`
}
