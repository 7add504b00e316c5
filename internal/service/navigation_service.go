package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"well-reports-bot/internal/constant"
	"well-reports-bot/internal/dto"
	"well-reports-bot/internal/entity"
	"well-reports-bot/internal/pkg/logger"
	"well-reports-bot/internal/repository/contract"
	"well-reports-bot/pkg/sheets"
	"well-reports-bot/pkg/telegram"
	"well-reports-bot/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// INavigationService interprets one inbound update against the stored
// session and renders the next screen. Screen state is derived from
// session.Mode plus the action; nothing else survives between updates.
type INavigationService interface {
	HandleUpdate(ctx context.Context, update *telegram.Update) error
}

type navigationService struct {
	sessionRepo  contract.SessionRepository
	eventLogRepo contract.EventLogRepository
	source       sheets.ReportSource
	tg           telegram.API
	publisher    message.Publisher
	summaryTopic string
	logger       logger.ILogger
}

func NewNavigationService(
	sessionRepo contract.SessionRepository,
	eventLogRepo contract.EventLogRepository,
	source sheets.ReportSource,
	tg telegram.API,
	publisher message.Publisher,
	summaryTopic string,
	log logger.ILogger,
) INavigationService {
	return &navigationService{
		sessionRepo:  sessionRepo,
		eventLogRepo: eventLogRepo,
		source:       source,
		tg:           tg,
		publisher:    publisher,
		summaryTopic: summaryTopic,
		logger:       log,
	}
}

func (s *navigationService) HandleUpdate(ctx context.Context, update *telegram.Update) error {
	switch {
	case update.Message != nil && update.Message.From != nil:
		if strings.HasPrefix(update.Message.Text, "/start") {
			return s.handleStart(ctx, update.Message)
		}
		// Free text is not part of the navigation surface.
		return nil
	case update.CallbackQuery != nil:
		return s.handleCallback(ctx, update.CallbackQuery)
	default:
		return nil
	}
}

func (s *navigationService) handleStart(ctx context.Context, msg *telegram.Message) error {
	userID := msg.From.ID
	s.audit(ctx, userID, entity.EventKindCommand, map[string]interface{}{"command": "/start"})

	kb := telegram.NewKeyboardBuilder().
		Button(constant.ButtonEnter, constant.CallbackEnter).
		Markup()

	// The welcome screen never touches the session.
	_, err := s.tg.SendMessage(ctx, &telegram.SendMessageRequest{
		ChatID:      msg.Chat.ID,
		Text:        constant.TextWelcome,
		ReplyMarkup: kb,
	})
	if err != nil {
		s.logger.Error("navigation", "failed to send welcome", map[string]interface{}{"user_id": userID, "error": err.Error()})
	}
	return err
}

func (s *navigationService) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) error {
	defer s.answerCallback(ctx, cb.ID)

	userID := cb.From.ID
	chatID := callbackChatID(cb)
	s.audit(ctx, userID, entity.EventKindCallback, map[string]interface{}{"data": cb.Data})

	switch {
	case cb.Data == constant.CallbackEnter || cb.Data == constant.CallbackBackToModes:
		return s.renderModeMenu(ctx, userID, chatID)
	case cb.Data == constant.CallbackModeDrilling || cb.Data == constant.CallbackModeCompletion:
		return s.handleModeSelection(ctx, userID, chatID, cb.Data)
	case cb.Data == constant.CallbackBackToWells:
		return s.handleBackToWells(ctx, userID, chatID)
	case cb.Data == constant.CallbackBackToStart:
		return s.renderWelcome(ctx, userID, chatID)
	case strings.HasPrefix(cb.Data, constant.CallbackWellPrefix):
		well := strings.TrimPrefix(cb.Data, constant.CallbackWellPrefix)
		return s.handleWellSelection(ctx, userID, chatID, well)
	default:
		// Unknown payloads are treated as malformed input: acknowledge
		// and move on so the transport stops redelivering.
		s.audit(ctx, userID, entity.EventKindInvalidInput, map[string]interface{}{"data": cb.Data})
		return nil
	}
}

// renderWelcome shows the entry screen. Back navigation preserves the
// stored mode so a quick return skips the mode menu fetch.
func (s *navigationService) renderWelcome(ctx context.Context, userID, chatID int64) error {
	s.retractLastMenu(ctx, userID, nil)

	kb := telegram.NewKeyboardBuilder().
		Button(constant.ButtonEnter, constant.CallbackEnter).
		Markup()

	_, err := s.tg.SendMessage(ctx, &telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        constant.TextWelcome,
		ReplyMarkup: kb,
	})
	return err
}

func (s *navigationService) renderModeMenu(ctx context.Context, userID, chatID int64) error {
	s.retractLastMenu(ctx, userID, nil)

	kb := telegram.NewKeyboardBuilder().
		Button(constant.ButtonDrilling, constant.CallbackModeDrilling).
		Button(constant.ButtonCompletion, constant.CallbackModeCompletion).
		Adjust(2).
		Markup()

	_, err := s.tg.SendMessage(ctx, &telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        constant.TextChooseMode,
		ReplyMarkup: kb,
	})
	return err
}

func (s *navigationService) handleModeSelection(ctx context.Context, userID, chatID int64, data string) error {
	mode := entity.ModeDrilling
	if data == constant.CallbackModeCompletion {
		mode = entity.ModeCompletion
	}

	if err := s.sessionRepo.UpsertMode(ctx, userID, mode); err != nil {
		return s.replyStoreError(ctx, userID, chatID, err)
	}

	return s.renderWellList(ctx, userID, chatID, mode, nil)
}

func (s *navigationService) handleBackToWells(ctx context.Context, userID, chatID int64) error {
	session, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return s.replyStoreError(ctx, userID, chatID, err)
	}
	if session == nil || !session.Mode.Valid() {
		return s.replyInvalidTransition(ctx, userID, chatID)
	}

	return s.renderWellList(ctx, userID, chatID, session.Mode, session)
}

// renderWellList retracts the old menu only after the list fetch succeeds so
// a failed fetch leaves the previous keyboard usable. session may be nil.
func (s *navigationService) renderWellList(ctx context.Context, userID, chatID int64, mode entity.Mode, session *entity.Session) error {
	wells, err := s.source.ListWells(ctx, string(mode), time.Now())
	if err != nil {
		return s.replySourceError(ctx, userID, chatID, constant.TextListError, err)
	}

	s.retractLastMenu(ctx, userID, session)

	if len(wells) == 0 {
		kb := telegram.NewKeyboardBuilder().
			Button(constant.ButtonBackToModes, constant.CallbackBackToModes).
			Markup()
		_, err := s.tg.SendMessage(ctx, &telegram.SendMessageRequest{
			ChatID:      chatID,
			Text:        constant.TextNoWells,
			ReplyMarkup: kb,
		})
		return err
	}

	b := telegram.NewKeyboardBuilder()
	for _, well := range wells {
		b.Button(well, constant.CallbackWellPrefix+well)
	}
	b.Adjust(3)
	kb := b.
		Button(constant.ButtonBackToModes, constant.CallbackBackToModes).
		Button(constant.ButtonBackToStart, constant.CallbackBackToStart).
		Row().
		Markup()

	_, err = s.tg.SendMessage(ctx, &telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        constant.TextChooseWell,
		ReplyMarkup: kb,
	})
	return err
}

func (s *navigationService) handleWellSelection(ctx context.Context, userID, chatID int64, well string) error {
	session, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return s.replyStoreError(ctx, userID, chatID, err)
	}
	// Mode gate: a well press with no mode on record fetches nothing and
	// mutates nothing.
	if session == nil || !session.Mode.Valid() {
		return s.replyInvalidTransition(ctx, userID, chatID)
	}

	now := time.Now()
	description, err := s.source.GetDescription(ctx, string(session.Mode), well, now)
	if err != nil {
		if errors.Is(err, sheets.ErrWellNotFound) {
			return s.replySourceError(ctx, userID, chatID, constant.TextWellNotFound, err)
		}
		return s.replySourceError(ctx, userID, chatID, constant.TextDetailError, err)
	}

	s.retractLastMenu(ctx, userID, session)

	kb := telegram.NewKeyboardBuilder().
		Button(constant.ButtonBackToWells, constant.CallbackBackToWells).
		Button(constant.ButtonBackToModes, constant.CallbackBackToModes).
		Button(constant.ButtonBackToStart, constant.CallbackBackToStart).
		Adjust(2).
		Markup()

	text := fmt.Sprintf("<b>%s</b>\n%s", well, description)
	chunks := utils.Paginate(text, constant.MaxMessageLength)

	for i, chunk := range chunks {
		req := &telegram.SendMessageRequest{ChatID: chatID, Text: chunk}
		if i == len(chunks)-1 {
			req.ReplyMarkup = kb
		}
		sent, err := s.tg.SendMessage(ctx, req)
		if err != nil {
			return err
		}
		if i == len(chunks)-1 {
			ref := entity.MenuRef{ChatID: chatID, MessageID: sent.MessageID}
			if err := s.sessionRepo.UpdateLastMenuRef(ctx, userID, ref); err != nil {
				// The screen already rendered; a stale ref only costs one
				// leftover keyboard later.
				s.logger.Warn("navigation", "failed to record menu ref", map[string]interface{}{"user_id": userID, "error": err.Error()})
			}
		}
	}

	s.publishSummaryRequest(userID, chatID, well, description, now)
	return nil
}

func (s *navigationService) publishSummaryRequest(userID, chatID int64, well, description string, now time.Time) {
	if s.publisher == nil {
		return
	}

	payload := dto.PublishSummaryMessage{
		ChatID:      chatID,
		UserID:      userID,
		WellNumber:  well,
		Description: description,
		Day:         now.Format("2006-01-02"),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("navigation", "failed to marshal summary request", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	if err := s.publisher.Publish(s.summaryTopic, msg); err != nil {
		// Summaries are enrichment; navigation already succeeded.
		s.logger.Warn("navigation", "failed to publish summary request", map[string]interface{}{"error": err.Error()})
	}
}

// retractLastMenu strips the reply controls from the previously recorded
// menu message. session may be nil when the caller has not loaded it yet.
// Cosmetic: every failure is logged and swallowed.
func (s *navigationService) retractLastMenu(ctx context.Context, userID int64, session *entity.Session) {
	if session == nil {
		var err error
		session, err = s.sessionRepo.FindByUserID(ctx, userID)
		if err != nil {
			return
		}
	}
	if session == nil || session.LastMenuRef == nil {
		return
	}

	ref := session.LastMenuRef
	if err := s.tg.EditMessageReplyMarkup(ctx, ref.ChatID, ref.MessageID, nil); err != nil {
		s.logger.Debug("navigation", "failed to strip old keyboard", map[string]interface{}{"user_id": userID, "error": err.Error()})
	}
}

func (s *navigationService) replyStoreError(ctx context.Context, userID, chatID int64, cause error) error {
	s.logger.Error("navigation", "session store failure", map[string]interface{}{"user_id": userID, "error": cause.Error()})
	s.audit(ctx, userID, entity.EventKindStoreError, map[string]interface{}{"error": cause.Error()})

	_, err := s.tg.SendMessage(ctx, &telegram.SendMessageRequest{ChatID: chatID, Text: constant.TextStoreError})
	return err
}

func (s *navigationService) replySourceError(ctx context.Context, userID, chatID int64, text string, cause error) error {
	s.logger.Error("navigation", "report source failure", map[string]interface{}{"user_id": userID, "error": cause.Error()})
	s.audit(ctx, userID, entity.EventKindSourceError, map[string]interface{}{"error": cause.Error()})

	_, err := s.tg.SendMessage(ctx, &telegram.SendMessageRequest{ChatID: chatID, Text: text})
	return err
}

func (s *navigationService) replyInvalidTransition(ctx context.Context, userID, chatID int64) error {
	s.audit(ctx, userID, entity.EventKindUserError, map[string]interface{}{"reason": "no mode selected"})

	_, err := s.tg.SendMessage(ctx, &telegram.SendMessageRequest{ChatID: chatID, Text: constant.TextSelectModeHint})
	return err
}

func (s *navigationService) answerCallback(ctx context.Context, callbackID string) {
	if err := s.tg.AnswerCallbackQuery(ctx, callbackID); err != nil {
		s.logger.Debug("navigation", "failed to answer callback", map[string]interface{}{"error": err.Error()})
	}
}

func (s *navigationService) audit(ctx context.Context, userID int64, kind string, payload map[string]interface{}) {
	if s.eventLogRepo == nil {
		return
	}
	log := entity.EventLog{UserID: userID, Kind: kind, Payload: payload}
	if err := s.eventLogRepo.Create(ctx, &log); err != nil {
		s.logger.Debug("navigation", "failed to write event log", map[string]interface{}{"error": err.Error()})
	}
}

func callbackChatID(cb *telegram.CallbackQuery) int64 {
	if cb.Message != nil {
		return cb.Message.Chat.ID
	}
	// Private chats share the user's ID.
	return cb.From.ID
}
