package server

import (
	"time"

	"chatboard/config"
	"chatboard/internal/handler"
	"chatboard/internal/redis"
	"chatboard/internal/repository"
	"chatboard/internal/services"
	"chatboard/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Build wires repositories, services and handlers into a ready Server.
// db may be nil (degraded mode); rdb may be nil (no rate limit, no cache).
func Build(cfg *config.Config, l *logger.Logger, db *gorm.DB, rdb *goredis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	var cache services.ProfileCache
	var limiter *redis.RateLimiter
	if rdb != nil {
		cache = redis.NewCacheStore(rdb, redis.DefaultCacheConfig())

		rl := redis.DefaultRateLimitConfig()
		if cfg.AuthRateLimit > 0 {
			rl.AuthLimit = cfg.AuthRateLimit
		}
		if cfg.AuthRateLimitWindowSec > 0 {
			rl.AuthWindow = time.Duration(cfg.AuthRateLimitWindowSec) * time.Second
		}
		limiter = redis.NewRateLimiter(rdb, rl)
	}

	authService := services.NewAuthService(userRepo, cache, cfg)
	userService := services.NewUserService(userRepo, authService)
	messageService := services.NewMessageService(messageRepo)

	s := New(cfg, l)
	s.SetupRoutes(&Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Users:    handler.NewUserHandler(userService),
		Messages: handler.NewMessageHandler(messageService),
		System:   handler.NewSystemHandler(db),
	}, authService, RouteOptions{
		DatabaseReady: db != nil,
		RateLimiter:   limiter,
	})
	return s
}
