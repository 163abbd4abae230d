package repository

import (
	"context"
	"time"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"gorm.io/gorm"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Register — upsert: клиенты перерегистрируются при каждом старте
// приложения, дубликат — не ошибка. Caption/Kind обновляются на месте.
func (r *DeviceRepository) Register(ctx context.Context, d *domain.Device) (*domain.Device, error) {
	var device domain.Device
	err := r.db.WithContext(ctx).
		Where(domain.Device{Username: d.Username, DeviceID: d.DeviceID}).
		Assign(map[string]interface{}{
			"caption":      d.Caption,
			"kind":         d.Kind,
			"last_seen_at": time.Now(),
		}).
		FirstOrCreate(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *DeviceRepository) List(ctx context.Context, username string) ([]domain.Device, error) {
	var devices []domain.Device
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("last_seen_at desc").
		Find(&devices).Error
	return devices, err
}

// Только при удалении аккаунта (внешний триггер)
func (r *DeviceRepository) DeleteAll(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).
		Where("username = ?", username).
		Delete(&domain.Device{}).Error
}
