package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventLog is the operator-facing audit trail of handled updates and the
// errors shown to users. Never read on the hot path.
type EventLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    int64          `gorm:"not null;index"`
	Kind      string         `gorm:"type:varchar(40);not null;index"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"default:now();not null;index"`
}

func (EventLog) TableName() string {
	return "event_logs"
}
