package services

import (
	"context"
	"testing"
	"time"

	"chatboard/internal/domain/user"
	chat_errors "chatboard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_EmbedsSender(t *testing.T) {
	f := newFixture(t, nil)
	sender := f.register(t, "s@example.com", "pw")

	m, err := f.messages.Post(context.Background(), sender, "hello")
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.False(t, m.Timestamp.IsZero())
	assert.Equal(t, sender.ID, m.SenderID)
	assert.Equal(t, sender.Profile(), m.Sender.Profile())

	stored, err := f.messages.List(context.Background(), 0, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, stored[0].ID, m.ID)
	assert.True(t, stored[0].Timestamp.Equal(m.Timestamp))
	assert.Zero(t, m.Timestamp.Nanosecond()%int(time.Microsecond))
}

func TestPost_Invalid(t *testing.T) {
	f := newFixture(t, nil)
	sender := f.register(t, "s@example.com", "pw")

	_, err := f.messages.Post(context.Background(), sender, "   ")
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)

	_, err = f.messages.Post(context.Background(), user.User{}, "hi")
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestList_SkipOneLimitOne(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	sender := f.register(t, "s@example.com", "pw")

	m1, err := f.messages.Post(ctx, sender, "M1")
	require.NoError(t, err)
	m2, err := f.messages.Post(ctx, sender, "M2")
	require.NoError(t, err)

	all, err := f.messages.List(ctx, 0, DefaultPageLimit)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, m1.ID, all[0].ID)
	assert.Equal(t, m2.ID, all[1].ID)

	page, err := f.messages.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, m2.ID, page[0].ID)
	assert.Equal(t, "s@example.com", page[0].Sender.Email)
}

func TestList_InvalidBounds(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, bounds := range [][2]int{{-1, 10}, {0, -1}, {0, MaxPageLimit + 1}} {
		_, err := f.messages.List(ctx, bounds[0], bounds[1])
		assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
	}
}
