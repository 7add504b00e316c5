package database

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Lazy is a process-wide database handle that dials on first use. Webhook
// invocations share one pool: concurrent first calls are serialized by the
// mutex, and a failed dial is retried on the next call instead of poisoning
// the process.
type Lazy struct {
	dsn string

	mu sync.Mutex
	db *gorm.DB
}

func NewLazy(dsn string) *Lazy {
	return &Lazy{dsn: dsn}
}

func (l *Lazy) Get(ctx context.Context) (*gorm.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.WithContext(ctx), nil
	}

	db, err := NewGormDBFromDSN(l.dsn)
	if err != nil {
		return nil, err
	}
	l.db = db
	return l.db.WithContext(ctx), nil
}
