package main

import (
	"context"
	"log"
	"time"

	"chatboard/config"
	"chatboard/internal/redis"
	"chatboard/internal/repository"
	"chatboard/internal/server"
	"chatboard/pkg/database"
	"chatboard/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	db := connectDatabase(cfg, l)
	defer database.Close(db)

	rdb := connectRedis(cfg, l)
	if rdb != nil {
		defer rdb.Close()
	}

	srv := server.Build(cfg, l, db, rdb)

	if err := srv.Start(); err != nil {
		l.Errorf("Server stopped: %v", err)
	}
}

// connectDatabase returns nil when the database is unconfigured or
// unreachable; the server then runs degraded.
func connectDatabase(cfg *config.Config, l *logger.Logger) *gorm.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		l.Errorf("Database unavailable, persistence routes disabled: %v", err)
		return nil
	}

	if cfg.AutoMigrate {
		if err := repository.InitSchema(db); err != nil {
			l.Errorf("Schema initialization failed: %v", err)
		}
	}
	return db
}

// connectRedis returns nil when REDIS_ADDR is empty or the server does not
// answer. Rate limiting and the profile cache are then off.
func connectRedis(cfg *config.Config, l *logger.Logger) *goredis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb, err := redis.Connect(context.Background(), redis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		l.Warnf("Redis unavailable, rate limiting disabled: %v", err)
		return nil
	}
	return rdb
}
