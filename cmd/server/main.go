package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/prashana14/StudyReuse-sub000/internal/api/http"
	"github.com/prashana14/StudyReuse-sub000/internal/application/auth"
	"github.com/prashana14/StudyReuse-sub000/internal/application/barter"
	"github.com/prashana14/StudyReuse-sub000/internal/application/item"
	"github.com/prashana14/StudyReuse-sub000/internal/application/notification"
	"github.com/prashana14/StudyReuse-sub000/internal/application/user"
	"github.com/prashana14/StudyReuse-sub000/internal/config"
	"github.com/prashana14/StudyReuse-sub000/internal/infrastructure/postgres"
	"github.com/prashana14/StudyReuse-sub000/internal/infrastructure/sse"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, "internal/migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	barterRepo := postgres.NewBarterRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	// infrastructure
	sseHub := sse.NewHub()

	// services
	notificationSvc := notification.NewService(notificationRepo, sseHub, logger)
	userSvc := user.NewService(userRepo, logger)
	authSvc := auth.NewService(userRepo, sessionRepo, cfg.SessionTTL, logger)
	itemSvc := item.NewService(itemRepo, logger)
	barterSvc := barter.NewService(barterRepo, itemRepo, userRepo, notificationSvc, logger)

	// API server
	apiServer := httpapi.NewServer(authSvc, userSvc, itemSvc, barterSvc, notificationSvc, sseHub, cfg.SessionCookieName, cfg.SessionCookieSecure)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// background loops
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			_, _ = notificationSvc.ProcessPendingNotifications(context.Background(), 50)
			_, _ = notificationSvc.ProcessRetryableNotifications(context.Background(), 50)
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := sessionRepo.DeleteExpired(context.Background()); err == nil && n > 0 {
				logger.Info().Int("count", n).Msg("expired sessions removed")
			}
			if n, err := notificationSvc.ExpireOverdueNotifications(context.Background(), 200); err == nil && n > 0 {
				logger.Info().Int("count", n).Msg("overdue notifications expired")
			}
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
	sseHub.Stop()
}
