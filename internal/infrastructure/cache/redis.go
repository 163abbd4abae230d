package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func (c *SessionCache) SaveRefresh(ctx context.Context, username string, refreshToken string) error {
	// Храним 7 дней
	return c.client.Set(ctx, "refresh_token:"+refreshToken, username, 7*24*time.Hour).Err()
}

func (c *SessionCache) CheckRefresh(ctx context.Context, refreshToken string) (string, error) {
	val, err := c.client.Get(ctx, "refresh_token:"+refreshToken).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *SessionCache) DeleteRefresh(ctx context.Context, refreshToken string) error {
	return c.client.Del(ctx, "refresh_token:"+refreshToken).Err()
}

// ProgressCache — позиция воспроизведения поверх лога действий. Источник
// истины всё равно лог: при push с другого устройства ключ сбрасывается,
// а не перезаписывается, чтобы last-write-wins решался по логу.
type ProgressCache struct {
	client *redis.Client
}

func NewProgressCache(client *redis.Client) *ProgressCache {
	return &ProgressCache{client: client}
}

func progressKey(username, episode string) string {
	return "watch_pos:" + username + ":" + episode
}

func (c *ProgressCache) SavePosition(ctx context.Context, username, episode string, position int) error {
	return c.client.Set(ctx, progressKey(username, episode), position, 24*time.Hour).Err()
}

func (c *ProgressCache) GetPosition(ctx context.Context, username, episode string) (int, bool, error) {
	val, err := c.client.Get(ctx, progressKey(username, episode)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	pos, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, nil
	}
	return pos, true, nil
}

func (c *ProgressCache) Delete(ctx context.Context, username, episode string) error {
	return c.client.Del(ctx, progressKey(username, episode)).Err()
}
