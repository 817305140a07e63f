package main

import (
	"context"
	"os"

	"focusquest/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"focusquest/internal/adapter/db"
	httpadapter "focusquest/internal/adapter/http"
	"focusquest/internal/adapter/http/handlers"
	httpmiddleware "focusquest/internal/adapter/http/middleware"
	"focusquest/internal/adapter/localstore"
	"focusquest/internal/adapter/store"
	"focusquest/internal/app/cache"
	"focusquest/internal/app/service"
	"focusquest/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	conn, err := db.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("failed to close postgres connection", zap.Error(err))
		}
	}()

	notifier, err := db.NewNotifier(db.DSN(cfg))
	if err != nil {
		logger.Fatal("failed to listen for task changes", zap.Error(err))
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("failed to close task change listener", zap.Error(err))
		}
	}()

	if err := os.MkdirAll(cfg.GuestStoreDir, 0o755); err != nil {
		logger.Fatal("failed to create guest store directory", zap.String("dir", cfg.GuestStoreDir), zap.Error(err))
	}
	guestStore := localstore.New(cfg.GuestStoreDir)

	rewardService := service.NewRewardService(db.NewRewardRepository(conn))
	pomodoroService := service.NewPomodoroService(db.NewPomodoroRepository(conn))

	registry := cache.NewRegistry(store.NewFactory(conn, guestStore), rewardService, cfg.CacheTTL)
	registry.WatchFeed(context.Background(), notifier)
	taskService := service.NewTaskService(registry)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("failed to set trusted proxies", zap.Error(err))
		}
	}

	httpadapter.RegisterRoutes(r, cfg.JWTSecret, httpadapter.Handlers{
		Health:   handlers.NewHealthHandler(conn),
		Task:     handlers.NewTaskHandler(taskService, rewardService),
		Planner:  handlers.NewPlannerHandler(taskService),
		Reward:   handlers.NewRewardHandler(rewardService, taskService),
		Pomodoro: handlers.NewPomodoroHandler(pomodoroService),
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
