package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"payledger/internal/models/db_models"
)

// ErrUsernameTaken is returned by Insert on a duplicate username.
var ErrUsernameTaken = errors.New("username already taken")

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByUsername(ctx context.Context, username string) (*db_models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	err := u.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}

func (u *userRepository) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "username = ?", username).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
