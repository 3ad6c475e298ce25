package services

import (
	"context"
	"strings"

	"chatboard/internal/domain/message"
	"chatboard/internal/domain/user"
	"chatboard/internal/repository"
	chat_errors "chatboard/pkg/errors"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

type MessageService struct {
	repo repository.MessageRepository
}

func NewMessageService(repo repository.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// Post stores content on behalf of sender and returns the stored row, read
// back with its sender so the timestamp matches later listings.
func (s *MessageService) Post(ctx context.Context, sender user.User, content string) (message.Message, error) {
	if strings.TrimSpace(content) == "" || sender.ID == 0 {
		return message.Message{}, chat_errors.ErrInvalidInput
	}

	m := &message.Message{
		Content:  content,
		SenderID: sender.ID,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return message.Message{}, err
	}
	return s.repo.GetByID(ctx, m.ID)
}

// List returns one page of the board, oldest first.
func (s *MessageService) List(ctx context.Context, skip, limit int) ([]message.Message, error) {
	if skip < 0 || limit < 0 || limit > MaxPageLimit {
		return nil, chat_errors.ErrInvalidInput
	}
	return s.repo.List(ctx, skip, limit)
}
