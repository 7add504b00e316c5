package contract

import (
	"context"

	"well-reports-bot/internal/entity"
)

type EventLogRepository interface {
	Create(ctx context.Context, log *entity.EventLog) error
}
