package domain

import (
	"strings"
	"time"
)

type ActionKind string

const (
	ActionNew      ActionKind = "new"
	ActionDownload ActionKind = "download"
	ActionPlay     ActionKind = "play"
	ActionDelete   ActionKind = "delete"
)

// ParseActionKind — полное отображение wire-текста в закрытый набор
// действий. Всё, что вне набора, — UnknownActionError.
func ParseActionKind(s string) (ActionKind, error) {
	switch k := ActionKind(strings.ToLower(s)); k {
	case ActionNew, ActionDownload, ActionPlay, ActionDelete:
		return k, nil
	default:
		return "", &UnknownActionError{Value: s}
	}
}

// EpisodeAction — неизменяемый факт в логе. ID (автоинкремент) служит
// server_sequence: назначается при вставке и не зависит от часов клиента.
// Уникальный индекс idx_action_dedup — ключ идемпотентности повторных
// загрузок с клиента.
type EpisodeAction struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	Username  string     `gorm:"size:64;index;uniqueIndex:idx_action_dedup" json:"-"`
	Device    string     `gorm:"size:64;uniqueIndex:idx_action_dedup" json:"device"`
	Podcast   string     `gorm:"size:512" json:"podcast"`
	Episode   string     `gorm:"size:512;uniqueIndex:idx_action_dedup;index" json:"episode"`
	Action    ActionKind `gorm:"size:16;uniqueIndex:idx_action_dedup" json:"action"`
	Timestamp int64      `gorm:"uniqueIndex:idx_action_dedup" json:"timestamp"` // часы клиента, секунды epoch

	// Только для action=play (секунды)
	Started  *int `json:"started,omitempty"`
	Position *int `json:"position,omitempty"`
	Total    *int `json:"total,omitempty"`

	CreatedAt time.Time `json:"-"`
}

// ActionFilter — необязательные фильтры для выборки из лога.
type ActionFilter struct {
	Podcast   string
	Device    string
	Episode   string
	Action    ActionKind
	Aggregate bool // схлопнуть до последнего действия на эпизод
}

// Newer — порядок "последнее известное состояние": сначала часы клиента,
// при равенстве — server_sequence.
func (a *EpisodeAction) Newer(b *EpisodeAction) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp > b.Timestamp
	}
	return a.ID > b.ID
}
