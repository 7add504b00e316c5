package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventKindCommand      = "command"
	EventKindCallback     = "callback"
	EventKindUserError    = "user_error"
	EventKindStoreError   = "store_error"
	EventKindSourceError  = "source_error"
	EventKindSummarySent  = "summary_sent"
	EventKindInvalidInput = "invalid_input"
)

type EventLog struct {
	Id        uuid.UUID
	UserID    int64
	Kind      string
	Payload   map[string]interface{} // JSONB
	CreatedAt time.Time
}
