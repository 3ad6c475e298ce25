package middleware

import (
	"errors"
	"net/http"
	"strings"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"
	chat_errors "chatboard/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to a user and stores it on the
// request context. Store failures are left to ErrorHandler.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearer(c)
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}

		u, err := service.ResolveCurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, chat_errors.ErrUnauthorized) {
				unauthorized(c, "Could not validate credentials")
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		ctx := services.WithUserContext(c.Request.Context(), u)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse(detail, "UNAUTHORIZED"))
}

func extractBearer(c *gin.Context) (string, bool) {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
