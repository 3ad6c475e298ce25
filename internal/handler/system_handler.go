package handler

import (
	"net/http"

	"chatboard/internal/transport/httpdto"
	chat_errors "chatboard/pkg/errors"
	"chatboard/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SystemHandler struct {
	db *gorm.DB
}

// NewSystemHandler creates the handler for the unauthenticated service
// endpoints. db is nil when the server started without a database.
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.WelcomeResponse{Message: "Welcome to the chat backend!"})
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.StatusResponse{Status: "ok"})
}

func (h *SystemHandler) DBCheck(c *gin.Context) {
	if h.db == nil {
		_ = c.Error(chat_errors.ErrNotConfigured)
		c.Abort()
		return
	}
	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Database connection failed: "+err.Error(), "DB_UNAVAILABLE"))
		return
	}
	c.JSON(http.StatusOK, httpdto.StatusResponse{Status: "db_connection_successful"})
}
