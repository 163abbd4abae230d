package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/cache"
)

// Предел сдвига метки при коллизии ключа дедупликации
const maxDedupRetries = 5

type WatchUseCase struct {
	actions  domain.ActionStore
	catalog  domain.EpisodeCatalog
	progress *cache.ProgressCache
}

func NewWatchUseCase(as domain.ActionStore, ec domain.EpisodeCatalog, pc *cache.ProgressCache) *WatchUseCase {
	return &WatchUseCase{
		actions:  as,
		catalog:  ec,
		progress: pc,
	}
}

// RecordWatchtime — обёртка над логом: обычная play-запись от имени
// устройства сессии. Неизвестный эпизод — NotFound. timestamp — время
// клиента, 0 — ставим серверное.
//
// Два репорта по одному эпизоду в одну секунду попадают на один ключ
// дедупликации; чтобы свежая позиция не пропала из лога, при
// поглощённой вставке со старой позицией двигаем метку на секунду
// вперёд и повторяем. В кэш уходит то, что реально легло в лог.
func (uc *WatchUseCase) RecordWatchtime(ctx context.Context, username, device, episodeID string, position int, timestamp int64) error {
	episode, err := uc.catalog.GetEpisode(ctx, episodeID)
	if err != nil {
		return err
	}

	podcasts, err := uc.catalog.GetPodcasts(ctx, []uint{episode.PodcastID})
	if err != nil {
		return err
	}
	podcast := podcasts[episode.PodcastID].FeedURL

	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	total := episode.Total
	var stored *domain.EpisodeAction
	for try := 0; try < maxDedupRetries; try++ {
		stored, err = uc.actions.Append(ctx, &domain.EpisodeAction{
			Username:  username,
			Device:    device,
			Podcast:   podcast,
			Episode:   episodeID,
			Action:    domain.ActionPlay,
			Timestamp: timestamp,
			Position:  &position,
			Total:     &total,
		})
		if err != nil {
			return err
		}
		if stored.Position != nil && *stored.Position == position {
			break
		}
		// Ключ занят записью с другой позицией — репорт не абсорбируется
		timestamp++
	}

	if uc.progress != nil && stored.Position != nil {
		if err := uc.progress.SavePosition(ctx, username, episodeID, *stored.Position); err != nil {
			log.Printf("Failed to cache watch position: %v", err)
		}
	}
	return nil
}

// LastWatched: по одной строке на эпизод — только самое свежее play,
// свежие сверху. Эпизоды, выпавшие из каталога, пропускаем.
func (uc *WatchUseCase) LastWatched(ctx context.Context, username string) ([]domain.WatchedEpisode, error) {
	actions, _, err := uc.actions.QuerySince(ctx, username, 0, domain.ActionFilter{
		Action:    domain.ActionPlay,
		Aggregate: true,
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(actions, func(i, j int) bool { return actions[i].Newer(&actions[j]) })

	watched := make([]domain.WatchedEpisode, 0, len(actions))
	for _, a := range actions {
		episode, err := uc.catalog.GetEpisode(ctx, a.Episode)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		w := domain.WatchedEpisode{
			Episode:   a.Episode,
			Name:      episode.Name,
			ImageURL:  episode.ImageURL,
			Total:     episode.Total,
			Timestamp: a.Timestamp,
		}
		if a.Position != nil {
			w.Position = *a.Position
		}
		if a.Total != nil {
			w.Total = *a.Total
		}
		watched = append(watched, w)
	}
	return watched, nil
}

// WatchtimeFor: последняя известная позиция, nil — если не слушали.
func (uc *WatchUseCase) WatchtimeFor(ctx context.Context, username, episodeID string) (*int, error) {
	if uc.progress != nil {
		pos, ok, err := uc.progress.GetPosition(ctx, username, episodeID)
		if err != nil {
			log.Printf("Progress cache read failed: %v", err)
		} else if ok {
			return &pos, nil
		}
	}

	actions, _, err := uc.actions.QuerySince(ctx, username, 0, domain.ActionFilter{
		Episode:   episodeID,
		Action:    domain.ActionPlay,
		Aggregate: true,
	})
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return nil, nil
	}

	position := 0
	if actions[0].Position != nil {
		position = *actions[0].Position
	}
	if uc.progress != nil {
		if err := uc.progress.SavePosition(ctx, username, episodeID, position); err != nil {
			log.Printf("Failed to cache watch position: %v", err)
		}
	}
	return &position, nil
}
