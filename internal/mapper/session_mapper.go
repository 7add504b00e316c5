package mapper

import (
	"well-reports-bot/internal/entity"
	"well-reports-bot/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	e := &entity.Session{
		UserID:    s.UserID,
		Mode:      entity.Mode(s.Mode),
		UpdatedAt: s.UpdatedAt,
	}
	if s.LastMenuChatID != nil && s.LastMenuMessageID != nil {
		e.LastMenuRef = &entity.MenuRef{
			ChatID:    *s.LastMenuChatID,
			MessageID: *s.LastMenuMessageID,
		}
	}
	return e
}

func (m *SessionMapper) ToModel(e *entity.Session) *model.Session {
	if e == nil {
		return nil
	}
	s := &model.Session{
		UserID:    e.UserID,
		Mode:      string(e.Mode),
		UpdatedAt: e.UpdatedAt,
	}
	if e.LastMenuRef != nil {
		chatID := e.LastMenuRef.ChatID
		messageID := e.LastMenuRef.MessageID
		s.LastMenuChatID = &chatID
		s.LastMenuMessageID = &messageID
	}
	return s
}
