package repository

import (
	"context"
	"errors"

	"chatboard/internal/domain/user"
	chat_errors "chatboard/pkg/errors"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts u and fills in its ID. The unique index on email is the
// authoritative duplicate check; its violation surfaces as ErrEmailTaken.
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return chat_errors.ErrEmailTaken
		}
		return res.Error
	}
	return nil
}
