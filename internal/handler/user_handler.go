package handler

import (
	"net/http"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a new user and returns its public profile.
func (h *UserHandler) Create(c *gin.Context) {
	var req httpdto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, locBody)
		return
	}

	u, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewUserResponse(u.Profile()))
}
