package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppPort                string
	AppMode                string
	DatabaseURL            string
	AutoMigrate            bool
	JWTSecret              string
	TokenExpiryMin         int
	BcryptCost             int
	CORSOrigins            []string
	TrustedProxies         []string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	AuthRateLimit          int
	AuthRateLimitWindowSec int
}

var (
	ErrMissingSecret = errors.New("JWT_SECRET (or SECRET_KEY) must be set")
	ErrInvalidExpiry = errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	ErrInvalidCost   = errors.New("BCRYPT_COST is out of range")
)

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppPort:                getEnv("APP_PORT", "8080"),
		AppMode:                getEnv("APP_MODE", "debug"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		AutoMigrate:            getEnvAsBool("AUTO_MIGRATE", true),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		TokenExpiryMin:         getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		BcryptCost:             getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		CORSOrigins:            getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		TrustedProxies:         getEnvAsList("TRUSTED_PROXIES", nil),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		AuthRateLimit:          getEnvAsInt("AUTH_RATE_LIMIT", 10),
		AuthRateLimitWindowSec: getEnvAsInt("AUTH_RATE_LIMIT_WINDOW_SEC", 60),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = getEnv("SECRET_KEY", "")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot run without.
// A missing DATABASE_URL is not an error: the server starts degraded.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.TokenExpiryMin <= 0 {
		return ErrInvalidExpiry
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidCost
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
