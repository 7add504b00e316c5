package implementation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"well-reports-bot/internal/entity"
	"well-reports-bot/internal/mapper"
	"well-reports-bot/internal/model"
	"well-reports-bot/internal/repository/contract"
	"well-reports-bot/pkg/database"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// 3 attempts total: first try plus two retries.
	maxRetries     = 2
	attemptTimeout = 5 * time.Second
)

type SessionRepositoryImpl struct {
	lazy   *database.Lazy
	mapper *mapper.SessionMapper
}

func NewSessionRepository(lazy *database.Lazy) contract.SessionRepository {
	return &SessionRepositoryImpl{
		lazy:   lazy,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) FindByUserID(ctx context.Context, userID int64) (*entity.Session, error) {
	var m *model.Session
	err := r.withRetry(ctx, func(db *gorm.DB) error {
		var row model.Session
		if err := db.First(&row, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				m = nil
				return nil
			}
			return err
		}
		m = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *SessionRepositoryImpl) UpsertMode(ctx context.Context, userID int64, mode entity.Mode) error {
	return r.withRetry(ctx, func(db *gorm.DB) error {
		row := model.Session{UserID: userID, Mode: string(mode)}
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"mode", "updated_at"}),
		}).Create(&row).Error
	})
}

func (r *SessionRepositoryImpl) UpdateLastMenuRef(ctx context.Context, userID int64, ref entity.MenuRef) error {
	return r.withRetry(ctx, func(db *gorm.DB) error {
		row := model.Session{
			UserID:            userID,
			LastMenuChatID:    &ref.ChatID,
			LastMenuMessageID: &ref.MessageID,
		}
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_menu_chat_id", "last_menu_message_id", "updated_at"}),
		}).Create(&row).Error
	})
}

// withRetry runs op against the lazily-dialed pool, retrying transient
// failures with exponential backoff. Validation and SQL errors are never
// retried. A budget exhausted on transient failures surfaces as
// contract.ErrStoreUnavailable.
func (r *SessionRepositoryImpl) withRetry(ctx context.Context, op func(db *gorm.DB) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = time.Second

	attempt := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		defer cancel()

		db, err := r.lazy.Get(attemptCtx)
		if err == nil {
			err = op(db)
		}
		if err == nil {
			return nil
		}
		if isTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
	if err == nil {
		return nil
	}
	// Retry unwraps Permanent errors before returning them, so transiency
	// of the final error tells us whether the budget was exhausted.
	if isTransient(err) {
		return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}
