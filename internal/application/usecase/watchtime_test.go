package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/repository"

	"gorm.io/gorm"
)

func newWatchUseCase(t *testing.T) (*WatchUseCase, *gorm.DB) {
	db := setupTestDB(t)
	uc := NewWatchUseCase(
		repository.NewActionRepository(db),
		repository.NewCatalogRepository(db),
		nil,
	)
	return uc, db
}

func TestRecordWatchtimeUnknownEpisode(t *testing.T) {
	uc, _ := newWatchUseCase(t)

	err := uc.RecordWatchtime(context.Background(), "alice", "phone", "https://nowhere.example/ep1", 30, 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordAndReadWatchtime(t *testing.T) {
	uc, db := newWatchUseCase(t)
	ctx := context.Background()
	seedCatalog(t, db, "https://cast.example/feed.xml", 1)
	episode := "https://cast.example/feed.xml/ep1"

	// Никогда не слушали — позиции нет, и это не ошибка
	pos, err := uc.WatchtimeFor(ctx, "alice", episode)
	if err != nil {
		t.Fatalf("WatchtimeFor failed: %v", err)
	}
	if pos != nil {
		t.Fatalf("expected no position before playback, got %v", *pos)
	}

	if err := uc.RecordWatchtime(ctx, "alice", "phone", episode, 42, 0); err != nil {
		t.Fatalf("RecordWatchtime failed: %v", err)
	}

	pos, err = uc.WatchtimeFor(ctx, "alice", episode)
	if err != nil {
		t.Fatalf("WatchtimeFor failed: %v", err)
	}
	if pos == nil || *pos != 42 {
		t.Errorf("expected position 42, got %v", pos)
	}
}

func TestLastWatchedLatestPlayOnly(t *testing.T) {
	uc, db := newWatchUseCase(t)
	ctx := context.Background()
	seedCatalog(t, db, "https://cast.example/feed.xml", 2)

	actions := repository.NewActionRepository(db)
	record := func(episode string, ts int64, position int) {
		t.Helper()
		_, err := actions.Append(ctx, &domain.EpisodeAction{
			Username:  "alice",
			Device:    "phone",
			Podcast:   "https://cast.example/feed.xml",
			Episode:   episode,
			Action:    domain.ActionPlay,
			Timestamp: ts,
			Position:  intPtr(position),
			Total:     intPtr(3600),
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	ep1 := "https://cast.example/feed.xml/ep1"
	ep2 := "https://cast.example/feed.xml/ep2"
	record(ep1, 100, 10)
	record(ep1, 300, 90) // свежее прослушивание ep1
	record(ep2, 200, 50)

	watched, err := uc.LastWatched(ctx, "alice")
	if err != nil {
		t.Fatalf("LastWatched failed: %v", err)
	}
	if len(watched) != 2 {
		t.Fatalf("expected one row per episode, got %d", len(watched))
	}

	// Свежие сверху
	if watched[0].Episode != ep1 || watched[0].Position != 90 {
		t.Errorf("expected ep1 at position 90 first, got %+v", watched[0])
	}
	if watched[1].Episode != ep2 || watched[1].Position != 50 {
		t.Errorf("expected ep2 at position 50 second, got %+v", watched[1])
	}
	if watched[0].Name == "" {
		t.Error("expected episode metadata joined from catalog")
	}
}

func TestLastWatchedSkipsVanishedEpisodes(t *testing.T) {
	uc, db := newWatchUseCase(t)
	ctx := context.Background()
	seedCatalog(t, db, "https://cast.example/feed.xml", 1)

	actions := repository.NewActionRepository(db)
	_, err := actions.Append(ctx, &domain.EpisodeAction{
		Username:  "alice",
		Device:    "phone",
		Podcast:   "https://gone.example/feed.xml",
		Episode:   "https://gone.example/feed.xml/ep1",
		Action:    domain.ActionPlay,
		Timestamp: 100,
		Position:  intPtr(10),
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	watched, err := uc.LastWatched(ctx, "alice")
	if err != nil {
		t.Fatalf("LastWatched failed: %v", err)
	}
	if len(watched) != 0 {
		t.Errorf("expected vanished episode skipped, got %+v", watched)
	}
}

// Два репорта по эпизоду в одну секунду: позднейшая позиция не должна
// абсорбироваться ключом дедупликации.
func TestRecordWatchtimeSameSecondKeepsLatest(t *testing.T) {
	uc, db := newWatchUseCase(t)
	ctx := context.Background()
	seedCatalog(t, db, "https://cast.example/feed.xml", 1)
	episode := "https://cast.example/feed.xml/ep1"

	if err := uc.RecordWatchtime(ctx, "alice", "phone", episode, 42, 500); err != nil {
		t.Fatalf("RecordWatchtime failed: %v", err)
	}
	if err := uc.RecordWatchtime(ctx, "alice", "phone", episode, 99, 500); err != nil {
		t.Fatalf("second RecordWatchtime failed: %v", err)
	}

	pos, err := uc.WatchtimeFor(ctx, "alice", episode)
	if err != nil {
		t.Fatalf("WatchtimeFor failed: %v", err)
	}
	if pos == nil || *pos != 99 {
		t.Errorf("second same-second position update lost: got %v, want 99", pos)
	}

	// Обе позиции остаются в логе как отдельные записи
	actions := repository.NewActionRepository(db)
	history, _, err := actions.QuerySince(ctx, "alice", 0, domain.ActionFilter{Episode: episode})
	if err != nil {
		t.Fatalf("QuerySince failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected both reports in the log, got %d rows", len(history))
	}
}
