package services

import (
	"context"
	"testing"

	"chatboard/config"
	"chatboard/internal/domain/user"
	"chatboard/internal/repository"
	"chatboard/internal/testutil"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	auth     *AuthService
	users    *UserService
	messages *MessageService
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		TokenExpiryMin: 30,
		BcryptCost:     bcrypt.MinCost,
	}
}

func newFixture(t *testing.T, cache ProfileCache) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	auth := NewAuthService(userRepo, cache, testConfig())
	return &fixture{
		db:       db,
		auth:     auth,
		users:    NewUserService(userRepo, auth),
		messages: NewMessageService(repository.NewMessageRepository(db)),
	}
}

func (f *fixture) register(t *testing.T, email, password string) user.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{Email: email, Nickname: "nick-" + email, Password: password})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

type memoryCache struct {
	users map[string]user.User
	gets  int
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{users: map[string]user.User{}}
}

func (c *memoryCache) GetUser(_ context.Context, email string) (*user.User, error) {
	c.gets++
	u, ok := c.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (c *memoryCache) SetUser(_ context.Context, u user.User) error {
	c.sets++
	u.PasswordHash = ""
	c.users[u.Email] = u
	return nil
}
