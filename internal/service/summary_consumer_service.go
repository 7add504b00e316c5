package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"well-reports-bot/internal/dto"
	"well-reports-bot/internal/entity"
	"well-reports-bot/internal/pkg/logger"
	"well-reports-bot/internal/repository/contract"
	"well-reports-bot/internal/repository/memory"
	"well-reports-bot/pkg/summarizer"
	"well-reports-bot/pkg/telegram"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ISummaryConsumerService follows up rendered well reports with a short
// model-generated summary. Strictly enrichment: any failure here means the
// user simply sees no summary.
type ISummaryConsumerService interface {
	Consume(ctx context.Context) error
}

type summaryConsumerService struct {
	subscriber   message.Subscriber
	topicName    string
	summarizer   summarizer.Summarizer
	cache        *memory.SummaryCache
	tg           telegram.API
	eventLogRepo contract.EventLogRepository
	logger       logger.ILogger
	timeout      time.Duration
}

func NewSummaryConsumerService(
	subscriber message.Subscriber,
	topicName string,
	sum summarizer.Summarizer,
	cache *memory.SummaryCache,
	tg telegram.API,
	eventLogRepo contract.EventLogRepository,
	log logger.ILogger,
	timeout time.Duration,
) ISummaryConsumerService {
	return &summaryConsumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		summarizer:   sum,
		cache:        cache,
		tg:           tg,
		eventLogRepo: eventLogRepo,
		logger:       log,
		timeout:      timeout,
	}
}

func (cs *summaryConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *summaryConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Always ack: a summary that failed once is not worth a redelivery loop.
	defer msg.Ack()

	var payload dto.PublishSummaryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("summary", "failed to unmarshal summary request", map[string]interface{}{"error": err.Error()})
		return
	}

	// Derived from the consumer ctx so shutdown cancels in-flight calls.
	ctx, cancel := context.WithTimeout(ctx, cs.timeout)
	defer cancel()

	cacheKey := payload.Day + ":" + payload.WellNumber
	summary, cached := cs.cache.Get(cacheKey)
	if !cached {
		var err error
		summary, err = cs.summarizer.Summarize(ctx, payload.Description)
		if err != nil {
			cs.logger.Warn("summary", "summarization failed", map[string]interface{}{"well": payload.WellNumber, "error": err.Error()})
			return
		}
		cs.cache.Set(cacheKey, summary)
	}

	if summary == "" {
		return
	}

	text := fmt.Sprintf("<i>Summary for %s:</i>\n%s", payload.WellNumber, summary)
	if _, err := cs.tg.SendMessage(ctx, &telegram.SendMessageRequest{ChatID: payload.ChatID, Text: text}); err != nil {
		cs.logger.Warn("summary", "failed to send summary", map[string]interface{}{"well": payload.WellNumber, "error": err.Error()})
		return
	}

	if cs.eventLogRepo != nil {
		log := entity.EventLog{
			UserID:  payload.UserID,
			Kind:    entity.EventKindSummarySent,
			Payload: map[string]interface{}{"well": payload.WellNumber, "cached": cached},
		}
		if err := cs.eventLogRepo.Create(ctx, &log); err != nil {
			cs.logger.Debug("summary", "failed to write event log", map[string]interface{}{"error": err.Error()})
		}
	}
}
