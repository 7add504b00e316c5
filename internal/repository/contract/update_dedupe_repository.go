package contract

import "context"

// UpdateDedupeRepository remembers recently handled update IDs so redelivered
// updates are dropped instead of re-running side effects.
type UpdateDedupeRepository interface {
	// FirstSeen reports whether this update ID has not been handled yet.
	FirstSeen(ctx context.Context, updateID int64) (bool, error)

	// Forget releases an update ID after a failed handling attempt so a
	// transport redelivery gets processed instead of dropped.
	Forget(ctx context.Context, updateID int64) error
}
