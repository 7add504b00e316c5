package implementation

import (
	"context"
	"encoding/json"

	"well-reports-bot/internal/entity"
	"well-reports-bot/internal/model"
	"well-reports-bot/internal/repository/contract"
	"well-reports-bot/pkg/database"

	"gorm.io/datatypes"
)

type EventLogRepositoryImpl struct {
	lazy *database.Lazy
}

func NewEventLogRepository(lazy *database.Lazy) contract.EventLogRepository {
	return &EventLogRepositoryImpl{lazy: lazy}
}

// Create writes one audit row. No retry: callers treat audit failures as
// best-effort and only log them.
func (r *EventLogRepositoryImpl) Create(ctx context.Context, log *entity.EventLog) error {
	db, err := r.lazy.Get(ctx)
	if err != nil {
		return err
	}

	var payload datatypes.JSON
	if log.Payload != nil {
		raw, err := json.Marshal(log.Payload)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}

	row := model.EventLog{
		UserID:  log.UserID,
		Kind:    log.Kind,
		Payload: payload,
	}
	if err := db.Create(&row).Error; err != nil {
		return err
	}
	log.Id = row.Id
	log.CreatedAt = row.CreatedAt
	return nil
}
