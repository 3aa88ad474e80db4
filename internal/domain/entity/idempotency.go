package entity

import "time"

// IdempotencyKey stores processed requests to prevent duplicates. Order
// creation and payment endpoints replay the cached response when the same
// key is seen again within the TTL.
type IdempotencyKey struct {
	ID           int64     `gorm:"primaryKey"`
	Key          string    `gorm:"uniqueIndex;size:255;not null"`
	UserID       int64     `gorm:"not null;index"`
	Endpoint     string    `gorm:"size:255;not null"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
