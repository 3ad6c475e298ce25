package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chatboard/internal/domain/user"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key pattern:
// - user:email:{email} - public profile of a resolved user

// CacheConfig contains configuration for caching
type CacheConfig struct {
	UserTTL time.Duration
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		UserTTL: 5 * time.Minute,
	}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

// UserCache is what gets stored; the password hash is never cached.
type UserCache struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// GetUser returns nil, nil on a cache miss.
func (c *CacheStore) GetUser(ctx context.Context, email string) (*user.User, error) {
	data, err := c.client.Get(ctx, userKey(email)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached UserCache
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &user.User{
		ID:        cached.ID,
		Email:     cached.Email,
		Nickname:  cached.Nickname,
		AvatarURL: cached.AvatarURL,
	}, nil
}

func (c *CacheStore) SetUser(ctx context.Context, u user.User) error {
	data, err := json.Marshal(UserCache{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userKey(u.Email), data, c.config.UserTTL).Err()
}

func userKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}
