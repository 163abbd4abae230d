package repository

import (
	"context"
	"errors"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Запоминаем выбор фильтра таймлайна как дефолт пользователя
func (r *UserRepository) SaveFavoredDefault(ctx context.Context, username string, favoredOnly bool) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"favored_only":     favoredOnly,
			"favored_only_set": true,
		}).Error
}
