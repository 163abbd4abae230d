package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"size:64;uniqueIndex"`
	Password string

	// Дефолт фильтра таймлайна. Запоминается при первом запросе.
	FavoredOnly    bool
	FavoredOnlySet bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
