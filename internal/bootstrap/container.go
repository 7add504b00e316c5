package bootstrap

import (
	"log"

	"well-reports-bot/internal/config"
	"well-reports-bot/internal/constant"
	"well-reports-bot/internal/controller"
	"well-reports-bot/internal/pkg/logger"
	"well-reports-bot/internal/repository/contract"
	"well-reports-bot/internal/repository/implementation"
	"well-reports-bot/internal/repository/memory"
	"well-reports-bot/internal/service"
	"well-reports-bot/pkg/creds"
	"well-reports-bot/pkg/database"
	"well-reports-bot/pkg/sheets"
	"well-reports-bot/pkg/summarizer"
	"well-reports-bot/pkg/telegram"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	WebhookController controller.IWebhookController

	// Background services (exposed for main.go to run)
	SummaryConsumer service.ISummaryConsumerService

	Logger logger.ILogger
}

func NewContainer(lazyDB *database.Lazy, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Repositories
	sessionRepo := implementation.NewSessionRepository(lazyDB)
	eventLogRepo := implementation.NewEventLogRepository(lazyDB)

	// External collaborators
	credsProvider := creds.NewProvider(cfg.Sheets.CredsURL, cfg.Sheets.Timeout)
	source := sheets.NewClient(
		cfg.Sheets.DrillingSheetID,
		cfg.Sheets.CompletionSheetID,
		credsProvider,
		cfg.Sheets.Timeout,
	)
	tg := telegram.NewClient(cfg.Telegram.APIBaseURL, cfg.Telegram.Token, cfg.Telegram.Timeout)

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	var publisher message.Publisher
	var summaryConsumer service.ISummaryConsumerService
	if cfg.Summary.Enabled {
		publisher = pubSub
		sum := summarizer.NewClient(
			cfg.Summary.Endpoint,
			cfg.Summary.APIKey,
			cfg.Summary.FolderID,
			constant.SummaryPrompt,
			cfg.Summary.Timeout,
		)
		summaryConsumer = service.NewSummaryConsumerService(
			pubSub,
			constant.SummaryTopicName,
			sum,
			memory.NewSummaryCache(),
			tg,
			eventLogRepo,
			sysLogger,
			cfg.Summary.Timeout,
		)
		log.Println("[INFO] Summary enrichment enabled")
	}

	navService := service.NewNavigationService(
		sessionRepo,
		eventLogRepo,
		source,
		tg,
		publisher,
		constant.SummaryTopicName,
		sysLogger,
	)

	var dedupe contract.UpdateDedupeRepository
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Invalid REDIS_URL, update dedupe disabled: %v", err)
		} else {
			dedupe = memory.NewDedupeRepository(redis.NewClient(opts))
		}
	}

	webhookController := controller.NewWebhookController(
		navService,
		dedupe,
		cfg.Telegram.WebhookSecret,
		sysLogger,
	)

	return &Container{
		WebhookController: webhookController,
		SummaryConsumer:   summaryConsumer,
		Logger:            sysLogger,
	}
}
