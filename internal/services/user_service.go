package services

import (
	"context"
	"strings"

	"chatboard/internal/domain/user"
	"chatboard/internal/repository"
	chat_errors "chatboard/pkg/errors"
)

type UserService struct {
	repo repository.UserRepository
	auth *AuthService
}

func NewUserService(repo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{repo: repo, auth: auth}
}

type RegisterInput struct {
	Email    string
	Nickname string
	Password string
}

// Register creates a user with a hashed password. An email that is already
// taken, whether caught by the lookup or by the unique index, is
// ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	if err := validateRegister(in); err != nil {
		return user.User{}, err
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, err
	}
	if existing != nil {
		return user.User{}, chat_errors.ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	newUser := &user.User{
		Email:        in.Email,
		PasswordHash: hash,
		Nickname:     in.Nickname,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return user.User{}, err
	}
	return *newUser, nil
}

func validateRegister(in RegisterInput) error {
	if in.Email == "" || in.Password == "" || strings.TrimSpace(in.Nickname) == "" {
		return chat_errors.ErrInvalidInput
	}
	if len(in.Password) > 72 {
		return chat_errors.ErrInvalidInput
	}
	return nil
}
