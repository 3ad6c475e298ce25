package repository

import (
	"context"
	"errors"

	"chatboard/internal/domain/message"
	chat_errors "chatboard/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	return r.db.WithContext(ctx).Omit("Sender").Create(m).Error
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uint) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, chat_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

// List pages through all messages oldest first. Equal timestamps fall back
// to insertion order through the id.
func (r *PostgresMessageRepository) List(ctx context.Context, offset, limit int) ([]message.Message, error) {
	messages := make([]message.Message, 0, limit)
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
