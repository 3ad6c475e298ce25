package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"chatboard/config"
	"chatboard/internal/repository"
	chat_errors "chatboard/pkg/errors"
	"chatboard/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	registered := f.register(t, "alice@example.com", "correct horse")

	got, err := f.auth.Authenticate(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, got.ID)

	_, wrongPassword := f.auth.Authenticate(ctx, "alice@example.com", "battery staple")
	_, unknownEmail := f.auth.Authenticate(ctx, "nobody@example.com", "correct horse")
	_, emptyPassword := f.auth.Authenticate(ctx, "alice@example.com", "")

	for _, err := range []error{wrongPassword, unknownEmail, emptyPassword} {
		assert.ErrorIs(t, err, chat_errors.ErrInvalidCredentials)
		assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)
	}
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthenticate_OneComparisonPerAttempt(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "carol@example.com", "pw")

	var calls int
	f.auth.compare = func(hash, password []byte) error {
		calls++
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	attempts := []struct{ email, password string }{
		{"carol@example.com", "pw"},
		{"carol@example.com", "wrong"},
		{"nobody@example.com", "pw"},
		{"", "pw"},
		{"carol@example.com", ""},
		{"", ""},
	}
	for _, a := range attempts {
		calls = 0
		_, _ = f.auth.Authenticate(ctx, a.email, a.password)
		assert.Equal(t, 1, calls, "email=%q password=%q", a.email, a.password)
	}
}

func TestHashPassword(t *testing.T) {
	f := newFixture(t, nil)

	h1, err := f.auth.HashPassword("secret")
	require.NoError(t, err)
	h2, err := f.auth.HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, "secret", h1)
	assert.NotEqual(t, h1, h2, "hashes must be salted")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h1), []byte("secret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(h1), []byte("Secret")))

	_, err = f.auth.HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestLogin_IssuesBearerToken(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "bob@example.com", "pw")

	tok, err := f.auth.Login(context.Background(), "bob@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)

	claims, err := f.auth.ParseAccessToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)

	_, err = f.auth.Login(context.Background(), "bob@example.com", "nope")
	assert.ErrorIs(t, err, chat_errors.ErrInvalidCredentials)
}

func TestResolveCurrentUser_BeforeAndAfterExpiry(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	u := f.register(t, "carol@example.com", "pw")

	tok, err := f.auth.CreateAccessToken(u.Email, time.Minute)
	require.NoError(t, err)

	got, err := f.auth.ResolveCurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	f.auth.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = f.auth.ResolveCurrentUser(ctx, tok)
	assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)
}

func TestResolveCurrentUser_Rejects(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "dave@example.com", "pw")

	otherCfg := testConfig()
	otherCfg.JWTSecret = "other-secret"
	other := NewAuthService(repository.NewUserRepository(f.db), nil, otherCfg)
	forged, err := other.CreateAccessToken("dave@example.com", time.Minute)
	require.NoError(t, err)

	unknown, err := f.auth.CreateAccessToken("ghost@example.com", time.Minute)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "dave@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "dave@example.com",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not.a.jwt",
		"wrong secret":   forged,
		"unknown sub":    unknown,
		"alg none":       noneAlg,
		"missing expiry": noExpiry,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.auth.ResolveCurrentUser(ctx, tok)
			assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)
		})
	}
}

func TestResolveCurrentUser_UsesCache(t *testing.T) {
	cache := newMemoryCache()
	f := newFixture(t, cache)
	ctx := context.Background()
	u := f.register(t, "erin@example.com", "pw")

	tok, err := f.auth.CreateAccessToken(u.Email, time.Minute)
	require.NoError(t, err)

	first, err := f.auth.ResolveCurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.NotEmpty(t, first.PasswordHash)

	second, err := f.auth.ResolveCurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, first.Profile(), second.Profile())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(chat_errors.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(chat_errors.ErrEmailTaken))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(chat_errors.ErrInvalidCredentials))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(chat_errors.ErrNotFound))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(chat_errors.ErrRateLimited))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(chat_errors.ErrNotConfigured))
}

func TestUserContext(t *testing.T) {
	f := newFixture(t, nil)
	u := f.register(t, "frank@example.com", "pw")

	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUserContext(context.Background(), u)
	got, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, ctx.Value(logger.UserIdKey))
}

func TestNewAuthService_DefaultCost(t *testing.T) {
	s := NewAuthService(nil, nil, &config.Config{JWTSecret: "k", TokenExpiryMin: 1})
	assert.Equal(t, time.Minute, s.AccessTTL())
	assert.NotEmpty(t, s.dummyHash)
}
