package entity

import (
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/enum"
)

// Reservation is a service appointment booked for a customer.
type Reservation struct {
	ID              int64                  `gorm:"primaryKey" json:"id"`
	MerchantID      int64                  `gorm:"not null;index" json:"merchantId"`
	ServiceID       *int64                 `json:"serviceId,omitempty"`
	ServiceName     string                 `gorm:"size:255" json:"serviceName,omitempty"`
	CustomerName    string                 `gorm:"size:255;not null" json:"customerName"`
	CustomerContact string                 `gorm:"size:255" json:"customerContact,omitempty"`
	AppointmentTime time.Time              `gorm:"not null;index" json:"appointmentTime"`
	Status          enum.ReservationStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// TableName returns the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
