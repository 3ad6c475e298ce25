package repository

import (
	"context"
	"testing"
	"time"

	"chatboard/internal/domain/message"
	"chatboard/internal/domain/user"
	"chatboard/internal/testutil"
	chat_errors "chatboard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) user.User {
	t.Helper()
	u := user.User{Email: email, PasswordHash: "h", Nickname: email[:1]}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), &u))
	return u
}

func TestMessageRepository_CreateAssignsIDAndTimestamp(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMessageRepository(db)
	sender := seedUser(t, db, "a@example.com")

	before := time.Now().UTC().Add(-time.Second)
	m := &message.Message{Content: "hi", SenderID: sender.ID}
	require.NoError(t, repo.Create(context.Background(), m))

	assert.NotZero(t, m.ID)
	assert.False(t, m.Timestamp.Before(before))

	got, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)
	assert.Equal(t, sender.ID, got.Sender.ID)
	assert.Equal(t, "a@example.com", got.Sender.Email)
}

func TestMessageRepository_GetByID_Missing(t *testing.T) {
	repo := NewMessageRepository(testutil.NewDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, chat_errors.ErrNotFound)
}

func TestMessageRepository_ListOrderAndPaging(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	// Inserted out of timestamp order on purpose.
	inputs := []message.Message{
		{Content: "third", SenderID: alice.ID, Timestamp: base.Add(2 * time.Minute)},
		{Content: "first", SenderID: bob.ID, Timestamp: base},
		{Content: "second", SenderID: alice.ID, Timestamp: base.Add(time.Minute)},
	}
	for i := range inputs {
		require.NoError(t, repo.Create(ctx, &inputs[i]))
	}

	all, err := repo.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"first", "second", "third"}, contents(all))
	assert.Equal(t, "bob@example.com", all[0].Sender.Email)
	assert.Equal(t, "alice@example.com", all[1].Sender.Email)

	page, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, contents(page))

	empty, err := repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	none, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMessageRepository_ListEqualTimestampsKeepInsertionOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()
	sender := seedUser(t, db, "a@example.com")

	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, c := range []string{"m1", "m2", "m3"} {
		require.NoError(t, repo.Create(ctx, &message.Message{Content: c, SenderID: sender.ID, Timestamp: ts}))
	}

	got, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3"}, contents(got))
}

func TestInitSchema(t *testing.T) {
	assert.NoError(t, InitSchema(testutil.NewDB(t)))
}

func contents(ms []message.Message) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Content
	}
	return out
}
