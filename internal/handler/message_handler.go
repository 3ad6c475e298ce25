package handler

import (
	"net/http"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"
	chat_errors "chatboard/pkg/errors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Create(c *gin.Context) {
	var req httpdto.MessageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, locBody)
		return
	}

	sender, ok := services.UserFromContext(c.Request.Context())
	if !ok {
		writeError(c, chat_errors.ErrUnauthorized)
		return
	}

	msg, err := h.service.Post(c.Request.Context(), sender, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageResponse(msg))
}

func (h *MessageHandler) List(c *gin.Context) {
	var query httpdto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err, locQuery)
		return
	}

	messages, err := h.service.List(c.Request.Context(), query.Skip, query.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageListResponse(messages))
}
