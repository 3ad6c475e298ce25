package message

import (
	"time"

	"chatboard/internal/domain/user"
)

// Message represents the messages table
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;autoCreateTime;index:idx_messages_timestamp"`
	SenderID  uint      `gorm:"not null;index:idx_messages_sender_id"`

	// Relationships
	Sender user.User `gorm:"foreignKey:SenderID"`
}

func (Message) TableName() string { return "messages" }
