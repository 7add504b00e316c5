package contract

import (
	"context"
	"errors"

	"well-reports-bot/internal/entity"
)

// ErrStoreUnavailable is returned once the retry budget for a transient
// store failure is exhausted. Non-transient errors pass through unwrapped.
var ErrStoreUnavailable = errors.New("session store unavailable")

type SessionRepository interface {
	// FindByUserID returns nil, nil when the user has no session yet.
	FindByUserID(ctx context.Context, userID int64) (*entity.Session, error)

	// UpsertMode sets the mode, leaving the stored menu ref untouched.
	UpsertMode(ctx context.Context, userID int64, mode entity.Mode) error

	// UpdateLastMenuRef upserts just the last-menu reference.
	UpdateLastMenuRef(ctx context.Context, userID int64, ref entity.MenuRef) error
}
