package middleware

import (
	"errors"
	"net/http"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"
	chat_errors "chatboard/pkg/errors"
	"chatboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached with c.Error when the
// handler chain did not write a response itself.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "request error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		if c.Writer.Written() {
			return
		}

		status := services.HTTPStatus(err)
		detail := err.Error()
		code := "INTERNAL_ERROR"
		switch {
		case errors.Is(err, chat_errors.ErrNotConfigured):
			detail = "Database connection is not configured correctly."
			code = "DB_NOT_CONFIGURED"
		case status == http.StatusInternalServerError:
			detail = "Internal server error"
		}
		c.JSON(status, httpdto.NewErrorResponse(detail, code))
	}
}
