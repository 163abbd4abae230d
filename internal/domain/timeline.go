package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// OrderKey — тотальный ключ порядка ленты: время записи эпизода,
// при равенстве — числовой ID. Курсор — сравнение по значению
// ("старше X"), поэтому вставки в голову ленты страницы не ломают.
type OrderKey struct {
	Timestamp int64
	EpisodeID uint
}

func (k OrderKey) String() string {
	return fmt.Sprintf("%d-%d", k.Timestamp, k.EpisodeID)
}

func (k OrderKey) Before(o OrderKey) bool {
	if k.Timestamp != o.Timestamp {
		return k.Timestamp < o.Timestamp
	}
	return k.EpisodeID < o.EpisodeID
}

func ParseOrderKey(s string) (OrderKey, error) {
	ts, id, ok := strings.Cut(s, "-")
	if !ok {
		return OrderKey{}, fmt.Errorf("bad timeline cursor %q", s)
	}
	t, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return OrderKey{}, fmt.Errorf("bad timeline cursor %q", s)
	}
	i, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return OrderKey{}, fmt.Errorf("bad timeline cursor %q", s)
	}
	return OrderKey{Timestamp: t, EpisodeID: uint(i)}, nil
}

type TimelineEntry struct {
	Episode Episode        `json:"episode"`
	Podcast Podcast        `json:"podcast"`
	Action  *EpisodeAction `json:"action,omitempty"`
	Favored bool           `json:"favored"`
}

type TimelinePage struct {
	Items      []TimelineEntry `json:"data"`
	NextCursor *OrderKey       `json:"-"`
	Total      int64           `json:"total_elements"`
}

// WatchedEpisode — строка списка "продолжить прослушивание".
type WatchedEpisode struct {
	Episode   string `json:"episode"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Position  int    `json:"position"`
	Total     int    `json:"total"`
	Timestamp int64  `json:"timestamp"`
}
