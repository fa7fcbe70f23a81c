package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/models"
)

// UserRepository resolves host-issued anonymous identifiers to accounts.
type UserRepository interface {
	GetByAnonymousID(ctx context.Context, anonymousID string) (models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates the repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByAnonymousID(ctx context.Context, anonymousID string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("anonymous_id = ?", anonymousID).
		First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}
