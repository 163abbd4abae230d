package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// DiffAndApply применяет добавления и снятия одной транзакцией: читатель
// никогда не видит половину набора. Повторные add по активной подписке и
// remove по отсутствующей молча поглощаются.
func (r *SubscriptionRepository) DiffAndApply(ctx context.Context, username, device string, add, remove []string) (*domain.AppliedChange, error) {
	applied := &domain.AppliedChange{Added: []string{}, Removed: []string{}}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		for _, podcast := range add {
			var sub domain.Subscription
			err := tx.
				Where("username = ? AND device = ? AND podcast = ?", username, device, podcast).
				First(&sub).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				sub = domain.Subscription{
					Username: username,
					Device:   device,
					Podcast:  podcast,
				}
				if err := tx.Create(&sub).Error; err != nil {
					return err
				}
				applied.Added = append(applied.Added, podcast)
			case err != nil:
				return err
			case sub.Deleted != nil:
				// Возврат мягко удалённой подписки
				if err := tx.Model(&sub).Update("deleted", nil).Error; err != nil {
					return err
				}
				applied.Added = append(applied.Added, podcast)
			}
		}

		for _, podcast := range remove {
			res := tx.Model(&domain.Subscription{}).
				Where("username = ? AND device = ? AND podcast = ? AND deleted IS NULL",
					username, device, podcast).
				Update("deleted", now)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				applied.Removed = append(applied.Removed, podcast)
			}
			// нет активной строки — no-op, не ошибка
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// ListChanges: подписки, изменённые строго после since, разложенные на
// add/remove по состоянию Deleted на момент снимка. Курсор — серверное
// время, взятое ДО чтения: изменение, проскочившее между курсором и
// чтением, придёт повторно в следующем pull, что для диффа безвредно.
func (r *SubscriptionRepository) ListChanges(ctx context.Context, username, device string, since int64) (*domain.SubscriptionChanges, error) {
	snapshot := time.Now()

	q := r.db.WithContext(ctx).
		Where("username = ? AND updated_at > ?", username, time.Unix(since, 0))
	if device != "" {
		q = q.Where("device = ?", device)
	}

	var subs []domain.Subscription
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}

	changes := &domain.SubscriptionChanges{
		Added:     []string{},
		Removed:   []string{},
		Timestamp: snapshot.Unix(),
	}
	for _, s := range subs {
		if s.Active() {
			changes.Added = append(changes.Added, s.Podcast)
		} else {
			changes.Removed = append(changes.Removed, s.Podcast)
		}
	}
	return changes, nil
}
