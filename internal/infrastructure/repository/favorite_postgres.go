package repository

import (
	"context"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) FavoredPodcastIDs(ctx context.Context, username string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("username = ? AND favored = ?", username, true).
		Pluck("podcast_id", &ids).Error
	return ids, err
}

func (r *FavoriteRepository) IsFavored(ctx context.Context, username string, podcastID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("username = ? AND podcast_id = ? AND favored = ?", username, podcastID, true).
		Count(&count).Error
	return count > 0, err
}
