package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vidtube/vidtube-api/internal/auth"
	"github.com/vidtube/vidtube-api/internal/config"
	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/events"
	"github.com/vidtube/vidtube-api/internal/handler"
	"github.com/vidtube/vidtube-api/internal/media"
	"github.com/vidtube/vidtube-api/internal/metrics"
	"github.com/vidtube/vidtube-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Auth.Secret == "" {
		logger.Log.Fatal("auth.secret must be configured")
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	store, err := media.NewStore(ctx, cfg.Media)
	if err != nil {
		logger.Log.Fatal("Failed to connect to object storage", zap.Error(err))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		publisher, err = events.NewPublisher(cfg.Events)
		if err != nil {
			logger.Log.Warn("Failed to connect to RabbitMQ, events disabled", zap.Error(err))
			publisher = events.NopPublisher{}
		}
	}
	defer publisher.Close()

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	userRepo := repository.NewUserRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	tweetRepo := repository.NewTweetRepository(pool)
	likeRepo := repository.NewLikeRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	playlistRepo := repository.NewPlaylistRepository(pool)
	historyRepo := repository.NewWatchHistoryRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	m := metrics.New()

	router := handler.NewRouter(handler.Handlers{
		Users:         handler.NewUserHandler(userRepo, tokens, store),
		Videos:        handler.NewVideoHandler(videoRepo, historyRepo, store, publisher, cfg.History.MaxEntries),
		Comments:      handler.NewCommentHandler(commentRepo, videoRepo),
		Tweets:        handler.NewTweetHandler(tweetRepo),
		Likes:         handler.NewLikeHandler(likeRepo),
		Subscriptions: handler.NewSubscriptionHandler(subscriptionRepo),
		Playlists:     handler.NewPlaylistHandler(playlistRepo, videoRepo),
		Dashboard:     handler.NewDashboardHandler(dashboardRepo, videoRepo, historyRepo),
		Health:        handler.NewHealthHandler(pool),
	}, tokens, m)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("Server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("Failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("Server stopped gracefully")
	}
}
