package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"gorm.io/gorm"
)

// Каталог read-only: писать туда — работа загрузчика фидов, не ядра.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetEpisode(ctx context.Context, episodeID string) (*domain.Episode, error) {
	var episode domain.Episode
	err := r.db.WithContext(ctx).
		Where("episode_id = ?", episodeID).
		First(&episode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

func (r *CatalogRepository) ListEpisodesForPodcast(ctx context.Context, podcastID uint) ([]domain.Episode, error) {
	var episodes []domain.Episode
	err := r.db.WithContext(ctx).
		Where("podcast_id = ?", podcastID).
		Order("date_of_recording desc, id desc").
		Find(&episodes).Error
	return episodes, err
}

// ListEpisodePage: строго старше before по ключу (date_of_recording, id),
// убыванием. Сравнение по значению, а не offset — вставки в голову ленты
// не сдвигают уже выданные страницы.
func (r *CatalogRepository) ListEpisodePage(ctx context.Context, before *domain.OrderKey, limit int, podcastIDs []uint) ([]domain.Episode, error) {
	q := r.db.WithContext(ctx).Model(&domain.Episode{})
	if before != nil {
		ts := time.Unix(before.Timestamp, 0)
		q = q.Where("date_of_recording < ? OR (date_of_recording = ? AND id < ?)",
			ts, ts, before.EpisodeID)
	}
	if podcastIDs != nil {
		q = q.Where("podcast_id IN ?", podcastIDs)
	}

	var episodes []domain.Episode
	err := q.Order("date_of_recording desc, id desc").
		Limit(limit).
		Find(&episodes).Error
	return episodes, err
}

func (r *CatalogRepository) GetPodcasts(ctx context.Context, ids []uint) (map[uint]domain.Podcast, error) {
	var podcasts []domain.Podcast
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&podcasts).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]domain.Podcast, len(podcasts))
	for _, p := range podcasts {
		out[p.ID] = p
	}
	return out, nil
}

func (r *CatalogRepository) CountEpisodes(ctx context.Context, podcastIDs []uint) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Episode{})
	if podcastIDs != nil {
		q = q.Where("podcast_id IN ?", podcastIDs)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
