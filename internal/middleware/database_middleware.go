package middleware

import (
	chat_errors "chatboard/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RequireDatabase short-circuits persistence routes when the server runs
// without a usable database.
func RequireDatabase(ready bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ready {
			_ = c.Error(chat_errors.ErrNotConfigured)
			c.Abort()
			return
		}
		c.Next()
	}
}
