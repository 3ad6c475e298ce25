package repository

import (
	"context"
	"testing"

	"chatboard/internal/domain/user"
	"chatboard/internal/testutil"
	chat_errors "chatboard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	u := &user.User{Email: "alice@example.com", PasswordHash: "hash", Nickname: "alice"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice", got.Nickname)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Nil(t, got.AvatarURL)
}

func TestUserRepository_FindByEmail_Miss(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))

	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_FindByEmail_CaseSensitive(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{Email: "Bob@example.com", PasswordHash: "h", Nickname: "bob"}))

	got, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{Email: "dup@example.com", PasswordHash: "h", Nickname: "one"}))

	err := repo.Create(ctx, &user.User{Email: "dup@example.com", PasswordHash: "h", Nickname: "two"})
	assert.ErrorIs(t, err, chat_errors.ErrConflict)
	assert.ErrorIs(t, err, chat_errors.ErrEmailTaken)
}
