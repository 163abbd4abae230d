package handlers

import (
	"strings"
	"time"

	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/security"
	"github.com/SamTV12345/PodFetch-sub001/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	authHandler *AuthHandler,
	deviceHandler *DeviceHandler,
	syncHandler *SyncHandler,
	watchHandler *WatchHandler,
	timelineHandler *TimelineHandler,
	limiter *middleware.RateLimiter,
	tokenManager *security.TokenManager,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if allowedOrigins != "" {
		config.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = !config.AllowAllOrigins
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(tokenManager))
		{
			protected.POST("/devices/:username/:deviceid", deviceHandler.Register)
			protected.GET("/devices/:username", deviceHandler.List)
			protected.DELETE("/devices/:username", deviceHandler.RemoveAll)

			protected.GET("/episodes/:username", syncHandler.PullEpisodeActions)
			protected.POST("/episodes/:username", syncHandler.PushEpisodeActions)

			protected.GET("/subscriptions/:username/:deviceid", syncHandler.PullSubscriptions)
			protected.POST("/subscriptions/:username/:deviceid", syncHandler.PushSubscriptions)

			protected.GET("/podcast/episode", watchHandler.Watchtime)
			protected.POST("/podcast/episode", watchHandler.RecordWatchtime)
			protected.GET("/podcast/episode/lastwatched", watchHandler.LastWatched)

			protected.GET("/timeline", timelineHandler.Page)
		}
	}

	return r
}
