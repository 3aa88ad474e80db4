package entity

import "time"

// ActionLog is an audit trail entry recorded for every mutating operation.
// DataBefore/DataAfter hold JSON snapshots of the affected record.
type ActionLog struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	ActorUserID *int64    `gorm:"index" json:"actorUserId,omitempty"`
	ActionType  string    `gorm:"size:64;not null" json:"actionType"`
	TargetType  string    `gorm:"size:64;not null" json:"targetType"`
	TargetID    *int64    `json:"targetId,omitempty"`
	MerchantID  *int64    `gorm:"index" json:"merchantId,omitempty"`
	DataBefore  []byte    `gorm:"type:jsonb" json:"dataBefore,omitempty"`
	DataAfter   []byte    `gorm:"type:jsonb" json:"dataAfter,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the table name for the ActionLog model
func (ActionLog) TableName() string {
	return "action_logs"
}
