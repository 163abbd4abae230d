package domain

import "context"

// Интерфейсы хранилища. Usecase-слой зависит только от них, конкретный
// бэкенд (postgres, sqlite в тестах) подставляется при сборке.

type ActionStore interface {
	// Append идемпотентен по ключу (user, device, episode, action,
	// timestamp): повтор возвращает уже сохранённую строку.
	Append(ctx context.Context, a *EpisodeAction) (*EpisodeAction, error)
	// QuerySince: строго seq > since. Возвращает и новый курсор —
	// максимальный видимый server_sequence пользователя на момент снимка.
	QuerySince(ctx context.Context, username string, since uint, f ActionFilter) ([]EpisodeAction, uint, error)
}

type SubscriptionStore interface {
	DiffAndApply(ctx context.Context, username, device string, add, remove []string) (*AppliedChange, error)
	ListChanges(ctx context.Context, username, device string, since int64) (*SubscriptionChanges, error)
}

type DeviceStore interface {
	Register(ctx context.Context, d *Device) (*Device, error)
	List(ctx context.Context, username string) ([]Device, error)
	DeleteAll(ctx context.Context, username string) error
}

type EpisodeCatalog interface {
	GetEpisode(ctx context.Context, episodeID string) (*Episode, error)
	ListEpisodesForPodcast(ctx context.Context, podcastID uint) ([]Episode, error)
	// Страница ленты: эпизоды строго старше before (nil — с головы),
	// убывание по (date_of_recording, id). podcastIDs nil — без фильтра.
	ListEpisodePage(ctx context.Context, before *OrderKey, limit int, podcastIDs []uint) ([]Episode, error)
	GetPodcasts(ctx context.Context, ids []uint) (map[uint]Podcast, error)
	CountEpisodes(ctx context.Context, podcastIDs []uint) (int64, error)
}

type FavoriteStore interface {
	FavoredPodcastIDs(ctx context.Context, username string) ([]uint, error)
	IsFavored(ctx context.Context, username string, podcastID uint) (bool, error)
}

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	SaveFavoredDefault(ctx context.Context, username string, favoredOnly bool) error
}
