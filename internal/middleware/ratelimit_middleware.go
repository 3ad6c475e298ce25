package middleware

import (
	"net/http"
	"strconv"

	"chatboard/internal/redis"
	"chatboard/internal/transport/httpdto"
	"chatboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthRateLimitMiddleware limits login and registration attempts per client
// IP. A Redis failure lets the request through.
func AuthRateLimitMiddleware(limiter *redis.RateLimiter, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
		if err != nil {
			if l != nil {
				l.Warnf("auth rate limit unavailable: %v", err)
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.Header("Retry-After", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("Too many attempts, try again later", "RATE_LIMITED"))
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
