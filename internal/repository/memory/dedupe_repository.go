package memory

import (
	"context"
	"fmt"
	"time"

	"well-reports-bot/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const dedupeTTL = 10 * time.Minute

// DedupeRepository remembers recently handled Telegram update IDs in redis.
// Telegram redelivers updates it considers unacknowledged; replays inside
// the TTL are dropped instead of re-running side effects.
type DedupeRepository struct {
	rdb *redis.Client
}

func NewDedupeRepository(rdb *redis.Client) contract.UpdateDedupeRepository {
	return &DedupeRepository{rdb: rdb}
}

// FirstSeen reports whether this update ID has not been handled yet.
// Errors are returned so the caller can decide to fail open.
func (r *DedupeRepository) FirstSeen(ctx context.Context, updateID int64) (bool, error) {
	return r.rdb.SetNX(ctx, key(updateID), 1, dedupeTTL).Result()
}

// Forget releases an update ID after a failed handling attempt so a
// transport redelivery gets processed instead of dropped.
func (r *DedupeRepository) Forget(ctx context.Context, updateID int64) error {
	return r.rdb.Del(ctx, key(updateID)).Err()
}

func key(updateID int64) string {
	return fmt.Sprintf("wellbot:update:%d", updateID)
}
