package usecase

import (
	"context"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"
)

type TimelineUseCase struct {
	catalog   domain.EpisodeCatalog
	actions   domain.ActionStore
	favorites domain.FavoriteStore
	users     domain.UserStore
}

func NewTimelineUseCase(ec domain.EpisodeCatalog, as domain.ActionStore, fs domain.FavoriteStore, us domain.UserStore) *TimelineUseCase {
	return &TimelineUseCase{
		catalog:   ec,
		actions:   as,
		favorites: fs,
		users:     us,
	}
}

// Page: лента эпизодов, убывание по (date_of_recording, id), строго
// старше курсора. favoredOnly nil — берём сохранённый дефолт
// пользователя; первый явный вызов этот дефолт запоминает.
func (uc *TimelineUseCase) Page(ctx context.Context, username string, favoredOnly *bool, cursor *domain.OrderKey, unwatchedOnly bool, pageSize int) (*domain.TimelinePage, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	favored := user.FavoredOnly
	if favoredOnly != nil {
		favored = *favoredOnly
	}
	if !user.FavoredOnlySet {
		if err := uc.users.SaveFavoredDefault(ctx, username, favored); err != nil {
			return nil, err
		}
	}

	favIDs, err := uc.favorites.FavoredPodcastIDs(ctx, username)
	if err != nil {
		return nil, err
	}
	favSet := make(map[uint]bool, len(favIDs))
	for _, id := range favIDs {
		favSet[id] = true
	}

	var podcastIDs []uint
	if favored {
		if len(favIDs) == 0 {
			return &domain.TimelinePage{Items: []domain.TimelineEntry{}}, nil
		}
		podcastIDs = favIDs
	}

	total, err := uc.catalog.CountEpisodes(ctx, podcastIDs)
	if err != nil {
		return nil, err
	}

	// Один проход по логу: последнее действие на эпизод — для выдачи,
	// "слушали хоть раз" — для фильтра. Позднейший download не делает
	// эпизод снова непрослушанным.
	history, _, err := uc.actions.QuerySince(ctx, username, 0, domain.ActionFilter{})
	if err != nil {
		return nil, err
	}
	latestByEpisode := make(map[string]domain.EpisodeAction, len(history))
	played := make(map[string]bool)
	for _, a := range history {
		if kept, ok := latestByEpisode[a.Episode]; !ok || a.Newer(&kept) {
			latestByEpisode[a.Episode] = a
		}
		if a.Action == domain.ActionPlay {
			played[a.Episode] = true
		}
	}

	page := &domain.TimelinePage{Items: []domain.TimelineEntry{}, Total: total}
	before := cursor

	// Фильтры могут проредить страницу каталога — добираем, пока не
	// наберём pageSize или не упрёмся в конец ленты.
	for len(page.Items) < pageSize {
		episodes, err := uc.catalog.ListEpisodePage(ctx, before, pageSize, podcastIDs)
		if err != nil {
			return nil, err
		}
		if len(episodes) == 0 {
			break
		}

		ids := make([]uint, 0, len(episodes))
		seen := make(map[uint]bool)
		for _, e := range episodes {
			if !seen[e.PodcastID] {
				seen[e.PodcastID] = true
				ids = append(ids, e.PodcastID)
			}
		}
		podcasts, err := uc.catalog.GetPodcasts(ctx, ids)
		if err != nil {
			return nil, err
		}

		for _, e := range episodes {
			var action *domain.EpisodeAction
			if a, ok := latestByEpisode[e.EpisodeID]; ok {
				action = &a
			}
			if unwatchedOnly && played[e.EpisodeID] {
				continue
			}
			page.Items = append(page.Items, domain.TimelineEntry{
				Episode: e,
				Podcast: podcasts[e.PodcastID],
				Action:  action,
				Favored: favSet[e.PodcastID],
			})
			if len(page.Items) == pageSize {
				break
			}
		}

		last := episodes[len(episodes)-1]
		before = &domain.OrderKey{Timestamp: last.DateOfRecording.Unix(), EpisodeID: last.ID}
		if len(episodes) < pageSize {
			break
		}
	}

	// Меньше полной страницы — конец ленты, курсора нет
	if len(page.Items) == pageSize {
		last := page.Items[len(page.Items)-1].Episode
		page.NextCursor = &domain.OrderKey{
			Timestamp: last.DateOfRecording.Unix(),
			EpisodeID: last.ID,
		}
	}
	return page, nil
}
