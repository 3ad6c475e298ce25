package database_test

import (
	"context"
	"testing"

	"chatboard/config"
	"chatboard/internal/testutil"
	"chatboard/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDevelopment(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := &database.SeedConfig{Password: "pw", UserCount: 2, BcryptCost: bcrypt.MinCost}

	result, err := database.SeedDevelopment(context.Background(), db, cfg)
	require.NoError(t, err)
	require.Len(t, result.Users, 2)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "alice@test.com", result.Users[0].Email)
	assert.Equal(t, result.Users[1].ID, result.Messages[1].SenderID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.Users[0].PasswordHash), []byte("pw")))

	again, err := database.SeedDevelopment(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.Len(t, again.Users, 2)
	assert.Empty(t, again.Messages)

	var users, messages int64
	require.NoError(t, db.Table("users").Count(&users).Error)
	require.NoError(t, db.Table("messages").Count(&messages).Error)
	assert.Equal(t, int64(2), users)
	assert.Equal(t, int64(2), messages)
}

func TestHealthCheck(t *testing.T) {
	assert.ErrorIs(t, database.HealthCheck(context.Background(), nil), database.ErrNoDatabaseURL)
	assert.NoError(t, database.HealthCheck(context.Background(), testutil.NewDB(t)))
}

func TestConnect_RequiresURL(t *testing.T) {
	_, err := database.Connect(context.Background(), &config.Config{})
	assert.ErrorIs(t, err, database.ErrNoDatabaseURL)
}
