package integration

import (
	"context"
	"log"
	"math/rand"
	"os"
	"testing"

	"well-reports-bot/internal/entity"
	"well-reports-bot/internal/model"
	"well-reports-bot/internal/repository/implementation"
	"well-reports-bot/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	err = gormDB.AutoMigrate(&model.Session{})
	assert.NoError(t, err)

	repo := implementation.NewSessionRepository(database.NewLazy(dsn))
	ctx := context.Background()

	// Throwaway user id keeps reruns independent.
	userID := rand.Int63()
	t.Cleanup(func() {
		gormDB.Delete(&model.Session{}, "user_id = ?", userID)
	})

	t.Run("Find before any write", func(t *testing.T) {
		session, err := repo.FindByUserID(ctx, userID)
		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("Upsert creates then overwrites mode", func(t *testing.T) {
		err := repo.UpsertMode(ctx, userID, entity.ModeDrilling)
		assert.NoError(t, err)

		session, err := repo.FindByUserID(ctx, userID)
		assert.NoError(t, err)
		if assert.NotNil(t, session) {
			assert.Equal(t, entity.ModeDrilling, session.Mode)
			assert.Nil(t, session.LastMenuRef)
		}

		err = repo.UpsertMode(ctx, userID, entity.ModeCompletion)
		assert.NoError(t, err)

		session, err = repo.FindByUserID(ctx, userID)
		assert.NoError(t, err)
		if assert.NotNil(t, session) {
			assert.Equal(t, entity.ModeCompletion, session.Mode)
		}
	})

	t.Run("Menu ref update preserves mode", func(t *testing.T) {
		ref := entity.MenuRef{ChatID: userID, MessageID: 77}
		err := repo.UpdateLastMenuRef(ctx, userID, ref)
		assert.NoError(t, err)

		session, err := repo.FindByUserID(ctx, userID)
		assert.NoError(t, err)
		if assert.NotNil(t, session) {
			assert.Equal(t, entity.ModeCompletion, session.Mode)
			if assert.NotNil(t, session.LastMenuRef) {
				assert.Equal(t, ref, *session.LastMenuRef)
			}
		}
	})
}
