package repository

import (
	"context"

	"chatboard/internal/domain/message"
	"chatboard/internal/domain/user"
)

type UserRepository interface {
	// FindByEmail returns nil, nil when no user has that email.
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
}

type MessageRepository interface {
	// List returns messages ordered by timestamp ascending with Sender loaded.
	List(ctx context.Context, offset, limit int) ([]message.Message, error)
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id uint) (message.Message, error)
}
