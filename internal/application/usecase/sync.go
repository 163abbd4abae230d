package usecase

import (
	"context"
	"log"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/cache"
)

type SyncUseCase struct {
	actions  domain.ActionStore
	subs     domain.SubscriptionStore
	progress *cache.ProgressCache
}

func NewSyncUseCase(as domain.ActionStore, ss domain.SubscriptionStore, pc *cache.ProgressCache) *SyncUseCase {
	return &SyncUseCase{
		actions:  as,
		subs:     ss,
		progress: pc,
	}
}

type PullResult struct {
	Actions []domain.EpisodeAction `json:"actions"`
	// Новый курсор. Клиент присылает его следующим since как есть.
	Timestamp uint `json:"timestamp"`
}

type PushError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type PushResult struct {
	Accepted int         `json:"accepted"`
	Rejected []PushError `json:"rejected"`
}

// Pull. Кросс-пользовательские запросы всегда Forbidden, никогда не
// "тихо отфильтровать". Пустой результат — не ошибка: курсор
// возвращается в любом случае, чтобы клиент мог его продвинуть.
func (uc *SyncUseCase) Pull(ctx context.Context, pathUser, sessionUser string, since uint, f domain.ActionFilter) (*PullResult, error) {
	if pathUser != sessionUser {
		return nil, domain.ErrForbidden
	}

	actions, cursor, err := uc.actions.QuerySince(ctx, pathUser, since, f)
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []domain.EpisodeAction{}
	}
	return &PullResult{Actions: actions, Timestamp: cursor}, nil
}

// Push — append-only, историю не переписывает. Поле device каждой записи
// принудительно затирается устройством сессии: выдать себя за чужое
// устройство нельзя. Bulk best-effort: судьба каждого элемента независима.
func (uc *SyncUseCase) Push(ctx context.Context, pathUser, sessionUser, device string, actions []domain.EpisodeAction) (*PushResult, error) {
	if pathUser != sessionUser {
		return nil, domain.ErrForbidden
	}

	res := &PushResult{Rejected: []PushError{}}
	for i := range actions {
		a := actions[i]
		a.Username = pathUser
		a.Device = device

		kind, err := domain.ParseActionKind(string(a.Action))
		if err != nil {
			res.Rejected = append(res.Rejected, PushError{Index: i, Error: err.Error()})
			continue
		}
		a.Action = kind

		stored, err := uc.actions.Append(ctx, &a)
		if err != nil {
			res.Rejected = append(res.Rejected, PushError{Index: i, Error: err.Error()})
			continue
		}
		res.Accepted++

		// Позиция могла устареть — сбрасываем кэш, а не перезаписываем:
		// победителя по часам выберет лог
		if stored.Action == domain.ActionPlay && uc.progress != nil {
			if err := uc.progress.Delete(ctx, pathUser, stored.Episode); err != nil {
				log.Printf("Failed to invalidate progress cache: %v", err)
			}
		}
	}
	return res, nil
}

func (uc *SyncUseCase) PullSubscriptions(ctx context.Context, pathUser, sessionUser, device string, since int64) (*domain.SubscriptionChanges, error) {
	if pathUser != sessionUser {
		return nil, domain.ErrForbidden
	}
	return uc.subs.ListChanges(ctx, pathUser, device, since)
}

func (uc *SyncUseCase) PushSubscriptions(ctx context.Context, pathUser, sessionUser, device string, add, remove []string) (*domain.AppliedChange, error) {
	if pathUser != sessionUser {
		return nil, domain.ErrForbidden
	}
	return uc.subs.DiffAndApply(ctx, pathUser, device, add, remove)
}
