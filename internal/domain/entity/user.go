package entity

import (
	"time"

	"github.com/sdp-labs/pos-api/internal/domain/enum"
)

// User is an operator account. SUPER_ADMIN users administer merchants and
// owners; BUSINESS_OWNER and EMPLOYEE users belong to a single merchant.
type User struct {
	ID           int64         `gorm:"primaryKey" json:"id"`
	Email        string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	Role         enum.UserRole `gorm:"size:20;not null" json:"role"`
	Name         string        `gorm:"size:255" json:"name,omitempty"`
	MerchantID   *int64        `gorm:"index" json:"merchantId,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
