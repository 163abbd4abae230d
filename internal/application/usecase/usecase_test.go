package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Device{},
		&domain.Subscription{},
		&domain.EpisodeAction{},
		&domain.Podcast{},
		&domain.Episode{},
		&domain.Favorite{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) {
	t.Helper()
	err := db.Create(&domain.User{
		ID:       uuid.New(),
		Username: username,
		Password: "x",
	}).Error
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

// seedCatalog создаёт подкаст и count эпизодов с убывающей давностью:
// эпизод 1 — самый старый.
func seedCatalog(t *testing.T, db *gorm.DB, feed string, count int) domain.Podcast {
	t.Helper()

	podcast := domain.Podcast{Name: "Test Cast", FeedURL: feed}
	if err := db.Create(&podcast).Error; err != nil {
		t.Fatalf("failed to seed podcast: %v", err)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= count; i++ {
		ep := domain.Episode{
			PodcastID:       podcast.ID,
			EpisodeID:       fmt.Sprintf("%s/ep%d", feed, i),
			Name:            fmt.Sprintf("Episode %d", i),
			URL:             fmt.Sprintf("%s/ep%d.mp3", feed, i),
			Total:           3600,
			DateOfRecording: base.Add(time.Duration(i) * 24 * time.Hour),
		}
		if err := db.Create(&ep).Error; err != nil {
			t.Fatalf("failed to seed episode: %v", err)
		}
	}
	return podcast
}

func intPtr(v int) *int { return &v }

func pushOne(t *testing.T, uc *SyncUseCase, user, device, episode string, ts int64, position int) {
	t.Helper()
	res, err := uc.Push(context.Background(), user, user, device, []domain.EpisodeAction{{
		Podcast:   "https://example.com/feed.xml",
		Episode:   episode,
		Action:    domain.ActionPlay,
		Timestamp: ts,
		Position:  intPtr(position),
	}})
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if res.Accepted != 1 {
		t.Fatalf("expected push to be accepted, got %+v", res)
	}
}
