package repository

import (
	"context"
	"testing"
	"time"
)

func TestDiffAndApplyAdds(t *testing.T) {
	repo := NewSubscriptionRepository(setupTestDB(t))
	ctx := context.Background()

	applied, err := repo.DiffAndApply(ctx, "alice", "phone",
		[]string{"https://one.example/feed.xml", "https://two.example/feed.xml"}, nil)
	if err != nil {
		t.Fatalf("DiffAndApply failed: %v", err)
	}
	if len(applied.Added) != 2 {
		t.Errorf("expected 2 additions applied, got %d", len(applied.Added))
	}

	// Повторный add активной подписки молча поглощается
	applied, err = repo.DiffAndApply(ctx, "alice", "phone",
		[]string{"https://one.example/feed.xml"}, nil)
	if err != nil {
		t.Fatalf("DiffAndApply failed: %v", err)
	}
	if len(applied.Added) != 0 {
		t.Errorf("expected duplicate add to be absorbed, got %v", applied.Added)
	}
}

func TestDiffAndApplyRemoveIsSoftDelete(t *testing.T) {
	repo := NewSubscriptionRepository(setupTestDB(t))
	ctx := context.Background()

	feed := "https://one.example/feed.xml"
	if _, err := repo.DiffAndApply(ctx, "alice", "phone", []string{feed}, nil); err != nil {
		t.Fatalf("DiffAndApply failed: %v", err)
	}

	applied, err := repo.DiffAndApply(ctx, "alice", "phone", nil, []string{feed})
	if err != nil {
		t.Fatalf("DiffAndApply failed: %v", err)
	}
	if len(applied.Removed) != 1 {
		t.Fatalf("expected 1 removal applied, got %d", len(applied.Removed))
	}

	// Строка не удалена физически: история диффа сохраняется
	changes, err := repo.ListChanges(ctx, "alice", "phone", 0)
	if err != nil {
		t.Fatalf("ListChanges failed: %v", err)
	}
	if len(changes.Removed) != 1 || changes.Removed[0] != feed {
		t.Errorf("expected soft-deleted feed in removed set, got %+v", changes)
	}

	// Возврат подписки реанимирует ту же строку
	applied, err = repo.DiffAndApply(ctx, "alice", "phone", []string{feed}, nil)
	if err != nil {
		t.Fatalf("DiffAndApply failed: %v", err)
	}
	if len(applied.Added) != 1 {
		t.Errorf("expected re-add to be applied, got %v", applied.Added)
	}
}

func TestRemoveUnknownPodcastIsNoop(t *testing.T) {
	repo := NewSubscriptionRepository(setupTestDB(t))
	ctx := context.Background()

	applied, err := repo.DiffAndApply(ctx, "alice", "phone", nil, []string{"https://never.example/feed.xml"})
	if err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if len(applied.Removed) != 0 {
		t.Errorf("expected nothing applied, got %v", applied.Removed)
	}
}

func TestListChangesPartitionAndCursor(t *testing.T) {
	repo := NewSubscriptionRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.DiffAndApply(ctx, "alice", "phone",
		[]string{"https://a.example/feed.xml", "https://b.example/feed.xml"}, nil); err != nil {
		t.Fatalf("DiffAndApply failed: %v", err)
	}
	if _, err := repo.DiffAndApply(ctx, "alice", "phone",
		nil, []string{"https://b.example/feed.xml"}); err != nil {
		t.Fatalf("DiffAndApply failed: %v", err)
	}

	changes, err := repo.ListChanges(ctx, "alice", "phone", 0)
	if err != nil {
		t.Fatalf("ListChanges failed: %v", err)
	}
	if len(changes.Added) != 1 || changes.Added[0] != "https://a.example/feed.xml" {
		t.Errorf("expected only active feed in added, got %v", changes.Added)
	}
	if len(changes.Removed) != 1 || changes.Removed[0] != "https://b.example/feed.xml" {
		t.Errorf("expected soft-deleted feed in removed, got %v", changes.Removed)
	}
	if changes.Timestamp == 0 {
		t.Error("expected server-time cursor in response")
	}

	// since в будущем — пустая дельта, не ошибка
	future := time.Now().Add(time.Minute).Unix()
	changes, err = repo.ListChanges(ctx, "alice", "phone", future)
	if err != nil {
		t.Fatalf("ListChanges failed: %v", err)
	}
	if len(changes.Added) != 0 || len(changes.Removed) != 0 {
		t.Errorf("expected empty delta for future since, got %+v", changes)
	}
}

func TestListChangesScopedToDevice(t *testing.T) {
	repo := NewSubscriptionRepository(setupTestDB(t))
	ctx := context.Background()

	repo.DiffAndApply(ctx, "alice", "phone", []string{"https://a.example/feed.xml"}, nil)
	repo.DiffAndApply(ctx, "alice", "laptop", []string{"https://b.example/feed.xml"}, nil)

	changes, err := repo.ListChanges(ctx, "alice", "phone", 0)
	if err != nil {
		t.Fatalf("ListChanges failed: %v", err)
	}
	if len(changes.Added) != 1 || changes.Added[0] != "https://a.example/feed.xml" {
		t.Errorf("expected only phone subscriptions, got %v", changes.Added)
	}

	// Пустой фильтр устройства — все устройства пользователя
	changes, err = repo.ListChanges(ctx, "alice", "", 0)
	if err != nil {
		t.Fatalf("ListChanges failed: %v", err)
	}
	if len(changes.Added) != 2 {
		t.Errorf("expected both devices' subscriptions, got %v", changes.Added)
	}
}
