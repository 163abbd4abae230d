package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redisClient *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

func (rl *RateLimiter) Limit(route string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// До логина считаем по IP, после — по пользователю: один дом
		// с несколькими устройствами не должен делить окно
		subject := c.GetString("username")
		if subject == "" {
			subject = c.ClientIP()
		}
		key := fmt.Sprintf("sync_rl:%s:%s", route, subject)

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			// Redis недоступен — синхронизацию не блокируем
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
