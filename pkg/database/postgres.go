package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatboard/config"
	"chatboard/internal/domain/message"
	"chatboard/internal/domain/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNoDatabaseURL = errors.New("DATABASE_URL environment variable not set")

// GormConfig is shared by the server, the migrate CLI and tests.
func GormConfig(mode string) *gorm.Config {
	level := gormlogger.Warn
	if mode == "debug" {
		level = gormlogger.Info
	}
	return &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(level),
		TranslateError:         true,
		SkipDefaultTransaction: true,
		// timestamptz keeps microseconds.
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// Connect opens the postgres pool described by cfg.DatabaseURL and pings it.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), GormConfig(cfg.AppMode))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := HealthCheck(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// HealthCheck runs SELECT 1 against db.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrNoDatabaseURL
	}
	var one int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return err
	}
	if one != 1 {
		return fmt.Errorf("unexpected health check result %d", one)
	}
	return nil
}

// AutoMigrate creates the users and messages tables if they are missing.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &message.Message{})
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
