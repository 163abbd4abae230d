package domain

import "time"

// Subscription — подписка (user, device, podcast). Физически не
// удаляется: снятие подписки проставляет Deleted, чтобы diff-синхронизация
// видела историю изменений.
type Subscription struct {
	ID        uint       `gorm:"primaryKey"`
	Username  string     `gorm:"size:64;index:idx_sub_user_device"`
	Device    string     `gorm:"size:64;index:idx_sub_user_device"`
	Podcast   string     `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   *time.Time `gorm:"index"`
}

func (s *Subscription) Active() bool {
	return s.Deleted == nil
}

// AppliedChange — что реально применилось (дубликаты молча поглощаются).
type AppliedChange struct {
	Added   []string `json:"add"`
	Removed []string `json:"remove"`
}

// SubscriptionChanges — дельта строго после since. Timestamp — серверное
// время снимка, его клиент присылает следующим since.
type SubscriptionChanges struct {
	Added     []string `json:"add"`
	Removed   []string `json:"remove"`
	Timestamp int64    `json:"timestamp"`
}
