// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Token exchanges a username (email) and password form for a bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req httpdto.TokenRequest
	if err := c.ShouldBindWith(&req, binding.FormPost); err != nil {
		writeBindError(c, err, locBody)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})
}
