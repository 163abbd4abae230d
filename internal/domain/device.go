package domain

import "time"

// Device — идентичность клиента: (username, device_id) уникальна.
// Caption и Kind можно менять, идентичность — нет.
type Device struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Username   string `gorm:"size:64;uniqueIndex:idx_user_device" json:"-"`
	DeviceID   string `gorm:"size:64;uniqueIndex:idx_user_device" json:"id"` // ID от клиента
	Caption    string `json:"caption"`
	Kind       string `gorm:"size:32" json:"type"`
	LastSeenAt time.Time `json:"-"`
	CreatedAt  time.Time `json:"-"`
}
