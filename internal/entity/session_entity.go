package entity

import "time"

// Mode is the report category a user is browsing.
type Mode string

const (
	ModeUnset      Mode = ""
	ModeDrilling   Mode = "drilling"
	ModeCompletion Mode = "completion"
)

func (m Mode) Valid() bool {
	return m == ModeDrilling || m == ModeCompletion
}

// MenuRef points at the last navigational keyboard shown to a user, so the
// next screen can retract it before rendering its own.
type MenuRef struct {
	ChatID    int64
	MessageID int64
}

// Session is the durable per-user navigation context. Screen state itself is
// derived on every update from Mode plus the inbound action; nothing else is
// persisted.
type Session struct {
	UserID      int64
	Mode        Mode
	LastMenuRef *MenuRef
	UpdatedAt   time.Time
}
