package httpdto

import (
	"time"

	"chatboard/internal/domain/message"
)

// MessageCreateRequest is used for POST /messages/
type MessageCreateRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

// ListMessagesQuery binds the query string of GET /messages/
type ListMessagesQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=0,max=1000"`
}

type MessageResponse struct {
	ID        uint         `json:"id"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	SenderID  uint         `json:"sender_id"`
	Sender    UserResponse `json:"sender"`
}

func NewMessageResponse(m message.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		SenderID:  m.SenderID,
		Sender:    NewUserResponse(m.Sender.Profile()),
	}
}

func NewMessageListResponse(ms []message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMessageResponse(m))
	}
	return out
}
