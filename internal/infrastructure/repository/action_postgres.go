package repository

import (
	"context"
	"sort"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// Append: одна атомарная вставка с ON CONFLICT DO NOTHING по ключу
// дедупликации. Клиенты ретраят загрузку при сетевых сбоях, повтор
// не должен родить вторую строку.
//
// Вся вставка идёт под advisory-локом на имя пользователя: id из
// последовательности выдаётся вне транзакции, и без сериализации
// коммитов строка с меньшим id могла бы закоммититься ПОСЛЕ того,
// как pull снял курсор по большему id — и навсегда выпасть из
// выборки id > since. Лок на пользователя держит порядок коммитов
// равным порядку id в пределах одного лога; pull всегда
// пользовательский, чужие вставки курсору не мешают.
func (r *ActionRepository) Append(ctx context.Context, a *domain.EpisodeAction) (*domain.EpisodeAction, error) {
	a.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", a.Username).Error; err != nil {
				return err
			}
		}
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "username"}, {Name: "device"}, {Name: "episode"},
				{Name: "action"}, {Name: "timestamp"},
			},
			DoNothing: true,
		}).Create(a)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Повтор того же логического события: отдаём уже сохранённую строку
			var existing domain.EpisodeAction
			err := tx.Where("username = ? AND device = ? AND episode = ? AND action = ? AND timestamp = ?",
				a.Username, a.Device, a.Episode, a.Action, a.Timestamp).
				First(&existing).Error
			if err != nil {
				return err
			}
			*a = existing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// QuerySince: seq строго больше since. Курсор снимается ДО чтения строк
// и ограничивает выборку сверху: строка, закоммиченная между двумя
// запросами, не вернётся сейчас (id > cursor) и целиком уйдёт в
// следующий pull — ни дублей, ни пропусков. Курсор считается только по
// строкам этого пользователя; вместе с локом в Append это гарантирует,
// что под курсором нет незакоммиченных id.
func (r *ActionRepository) QuerySince(ctx context.Context, username string, since uint, f domain.ActionFilter) ([]domain.EpisodeAction, uint, error) {
	var cursor uint
	err := r.db.WithContext(ctx).Model(&domain.EpisodeAction{}).
		Where("username = ? AND id > ?", username, since).
		Select("COALESCE(MAX(id), 0)").
		Scan(&cursor).Error
	if err != nil {
		return nil, 0, err
	}
	if cursor < since {
		cursor = since
	}

	q := r.db.WithContext(ctx).
		Where("username = ? AND id > ? AND id <= ?", username, since, cursor)
	if f.Podcast != "" {
		q = q.Where("podcast = ?", f.Podcast)
	}
	if f.Device != "" {
		q = q.Where("device = ?", f.Device)
	}
	if f.Episode != "" {
		q = q.Where("episode = ?", f.Episode)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}

	var actions []domain.EpisodeAction
	if err := q.Order("id asc").Find(&actions).Error; err != nil {
		return nil, 0, err
	}
	if f.Aggregate {
		actions = aggregateLatest(actions)
	}
	return actions, cursor, nil
}

// Схлопывание до "текущего известного состояния": одна строка на эпизод,
// победитель — наибольший client timestamp, при равенстве — seq.
func aggregateLatest(actions []domain.EpisodeAction) []domain.EpisodeAction {
	latest := make(map[string]domain.EpisodeAction, len(actions))
	for _, a := range actions {
		if kept, ok := latest[a.Episode]; !ok || a.Newer(&kept) {
			latest[a.Episode] = a
		}
	}
	out := make([]domain.EpisodeAction, 0, len(latest))
	for _, a := range latest {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
