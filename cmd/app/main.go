package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SamTV12345/PodFetch-sub001/internal/application/usecase"
	"github.com/SamTV12345/PodFetch-sub001/internal/config"
	"github.com/SamTV12345/PodFetch-sub001/internal/domain"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/cache"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/repository"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/security"
	"github.com/SamTV12345/PodFetch-sub001/internal/middleware"
	handlers "github.com/SamTV12345/PodFetch-sub001/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Подключение к БД
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// 3. Миграции
	log.Println("Running migrations...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Device{},
		&domain.Subscription{},
		&domain.EpisodeAction{},
		&domain.Podcast{},
		&domain.Episode{},
		&domain.Favorite{},
	); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.RedisAddr)

	// 4. Инициализация слоев
	userRepo := repository.NewUserRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	actionRepo := repository.NewActionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	sessionCache := cache.NewSessionCache(rdb)
	progressCache := cache.NewProgressCache(rdb)
	hasher := security.NewPasswordHasher(0)
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)
	rateLimiter := middleware.NewRateLimiter(rdb)

	authUseCase := usecase.NewAuthUseCase(userRepo, deviceRepo, sessionCache, hasher, tokenManager)
	deviceUseCase := usecase.NewDeviceUseCase(deviceRepo)
	syncUseCase := usecase.NewSyncUseCase(actionRepo, subscriptionRepo, progressCache)
	watchUseCase := usecase.NewWatchUseCase(actionRepo, catalogRepo, progressCache)
	timelineUseCase := usecase.NewTimelineUseCase(catalogRepo, actionRepo, favoriteRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authUseCase)
	deviceHandler := handlers.NewDeviceHandler(deviceUseCase)
	syncHandler := handlers.NewSyncHandler(syncUseCase)
	watchHandler := handlers.NewWatchHandler(watchUseCase)
	timelineHandler := handlers.NewTimelineHandler(timelineUseCase)

	// 5. Роутер и HTTP сервер
	router := handlers.NewRouter(
		authHandler, deviceHandler, syncHandler, watchHandler, timelineHandler,
		rateLimiter, tokenManager, cfg.AllowedOrigins,
	)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Sync server running on %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}
