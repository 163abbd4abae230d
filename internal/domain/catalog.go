package domain

import "time"

// Каталог подкастов и эпизодов. Ядро синхронизации его только читает:
// наполнением занимается внешний загрузчик фидов.

type Podcast struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `json:"name"`
	FeedURL   string `gorm:"size:512;uniqueIndex" json:"feed_url"`
	ImageURL  string `json:"image_url"`
	Author    string `json:"author"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Episode struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PodcastID uint   `gorm:"index" json:"podcast_id"`
	EpisodeID string `gorm:"size:512;uniqueIndex" json:"episode_id"` // guid/url, которым оперируют клиенты
	Name      string `json:"name"`
	URL       string `gorm:"size:512" json:"url"`
	ImageURL  string `json:"image_url"`
	Total     int    `json:"total"` // длительность, секунды

	DateOfRecording time.Time `gorm:"index" json:"date_of_recording"`
	CreatedAt       time.Time `json:"-"`
}

// Favorite — флаг "любимый подкаст" пользователя.
type Favorite struct {
	Username  string `gorm:"size:64;primaryKey"`
	PodcastID uint   `gorm:"primaryKey"`
	Favored   bool
	CreatedAt time.Time
}
