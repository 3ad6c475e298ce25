package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"chatboard/internal/domain/message"
	"chatboard/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Password   string
	UserCount  int
	BcryptCost int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Password:   "Test@123!",
		UserCount:  3,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []user.User
	Messages []message.Message
}

var testUserData = []struct {
	email    string
	nickname string
	greeting string
}{
	{"alice@test.com", "alice", "Hi everyone, Alice here."},
	{"bob@test.com", "bob", "Hey Alice! Bob checking in."},
	{"charlie@test.com", "charlie", "Morning all."},
	{"diana@test.com", "diana", "Anyone up for lunch?"},
	{"edward@test.com", "edward", "Just deployed the new build."},
}

// SeedDevelopment creates demo users sharing cfg.Password and one greeting
// message per user. Users that already exist are reused, and messages are
// only written for users created by this run.
func SeedDevelopment(ctx context.Context, db *gorm.DB, cfg *SeedConfig) (*SeedResult, error) {
	if db == nil {
		return nil, ErrNoDatabaseURL
	}
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	log.Println("Starting database seeding...")
	result := &SeedResult{}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < cfg.UserCount && i < len(testUserData); i++ {
			data := testUserData[i]

			var existing user.User
			err := tx.Where("email = ?", data.email).First(&existing).Error
			if err == nil {
				log.Printf("Test user %s already exists, skipping", data.email)
				result.Users = append(result.Users, existing)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			u := user.User{
				Email:        data.email,
				Nickname:     data.nickname,
				PasswordHash: string(hashed),
			}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("failed to create test user %s: %w", data.email, err)
			}
			result.Users = append(result.Users, u)

			m := message.Message{Content: data.greeting, SenderID: u.ID}
			if err := tx.Omit("Sender").Create(&m).Error; err != nil {
				return fmt.Errorf("failed to create message for %s: %w", data.email, err)
			}
			m.Sender = u
			result.Messages = append(result.Messages, m)
			log.Printf("Test user seeded: %s", data.email)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database seeding completed successfully!")
	return result, nil
}
