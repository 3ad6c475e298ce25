package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"chatboard/config"
	"chatboard/internal/domain/user"
	"chatboard/internal/repository"
	chat_errors "chatboard/pkg/errors"
	"chatboard/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ProfileCache keeps recently resolved users keyed by email. Implementations
// store the public profile only; cached users come back without a hash.
type ProfileCache interface {
	GetUser(ctx context.Context, email string) (*user.User, error)
	SetUser(ctx context.Context, u user.User) error
}

type AuthService struct {
	userRepo   repository.UserRepository
	cache      ProfileCache
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int
	dummyHash  []byte
	compare    func(hash, password []byte) error
	now        func() time.Time
}

// NewAuthService wires the service. cache may be nil.
func NewAuthService(userRepo repository.UserRepository, cache ProfileCache, cfg *config.Config) *AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the email is unknown so both failure paths pay
	// for one bcrypt comparison.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)

	return &AuthService{
		userRepo:   userRepo,
		cache:      cache,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.TokenExpiryMin) * time.Minute,
		bcryptCost: cost,
		dummyHash:  dummy,
		compare:    bcrypt.CompareHashAndPassword,
		now:        time.Now,
	}
}

type AccessClaims struct {
	jwt.RegisteredClaims
}

type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AccessTTL is the lifetime given to tokens issued by Login.
func (s *AuthService) AccessTTL() time.Duration {
	return s.accessTTL
}

// Authenticate returns the user owning email when password matches its hash.
// Every failure yields ErrInvalidCredentials after exactly one bcrypt
// comparison, so empty input, an unknown email and a wrong password cost
// the same.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	if email == "" || password == "" {
		_ = s.compare(s.dummyHash, []byte(password))
		return user.User{}, chat_errors.ErrInvalidCredentials
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}
	if u == nil {
		_ = s.compare(s.dummyHash, []byte(password))
		return user.User{}, chat_errors.ErrInvalidCredentials
	}

	if err := s.compare([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, chat_errors.ErrInvalidCredentials
	}
	return *u, nil
}

// Login authenticates and issues an access token for the default TTL.
func (s *AuthService) Login(ctx context.Context, email, password string) (Token, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return Token{}, err
	}

	signed, err := s.CreateAccessToken(u.Email, s.accessTTL)
	if err != nil {
		return Token{}, err
	}
	return Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresAt:   s.now().Add(s.accessTTL),
	}, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", chat_errors.ErrInvalidInput
		}
		return "", err
	}
	return string(bytes), nil
}

// CreateAccessToken signs an HS256 token whose subject is subject and which
// expires ttl from now.
func (s *AuthService) CreateAccessToken(subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chat_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}
	return *claims, nil
}

// ResolveCurrentUser maps a bearer token back to its user. Any failure,
// including a subject that no longer resolves, is ErrUnauthorized.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, tokenString string) (user.User, error) {
	claims, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return user.User{}, err
	}

	if s.cache != nil {
		if cached, err := s.cache.GetUser(ctx, claims.Subject); err == nil && cached != nil {
			return *cached, nil
		} else if err != nil {
			if l := logger.GetGlobalLogger(); l != nil {
				l.Warnf("profile cache read failed: %v", err)
			}
		}
	}

	u, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return user.User{}, err
	}
	if u == nil {
		return user.User{}, chat_errors.ErrUnauthorized
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, *u); err != nil {
			if l := logger.GetGlobalLogger(); l != nil {
				l.Warnf("profile cache write failed: %v", err)
			}
		}
	}
	return *u, nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, chat_errors.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, chat_errors.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, chat_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, chat_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var currentUserKey ctxKey = "current_user"

// WithUserContext stores the authenticated user on ctx, and its id under
// the logger key so log lines carry it.
func WithUserContext(ctx context.Context, u user.User) context.Context {
	ctx = context.WithValue(ctx, currentUserKey, u)
	return context.WithValue(ctx, logger.UserIdKey, strconv.FormatUint(uint64(u.ID), 10))
}

func UserFromContext(ctx context.Context) (user.User, bool) {
	value := ctx.Value(currentUserKey)
	if value == nil {
		return user.User{}, false
	}
	u, ok := value.(user.User)
	return u, ok
}
