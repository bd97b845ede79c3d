package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"example.com/smartsave-campus/backend/internal/ai"
	"example.com/smartsave-campus/backend/internal/config"
	"example.com/smartsave-campus/backend/internal/database"
	"example.com/smartsave-campus/backend/internal/quota"
	"example.com/smartsave-campus/backend/internal/repository"
	"example.com/smartsave-campus/backend/internal/server"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx := context.Background()
	deps := server.Dependencies{}

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := repository.NewMemoryStore(time.Now)
		if cfg.Store.DemoData {
			store.SeedDemo()
			logger.Info("demo data loaded", slog.String("user_id", repository.DemoUserID))
		}
		deps.Stores = store.Stores()
	default:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		if cfg.Database.Migrate {
			if err := database.Migrate(ctx, db); err != nil {
				logger.Error("failed to apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		deps.Stores = repository.NewPostgresStores(db)
	}

	aiClient, err := ai.New(ctx, ai.Settings{
		Provider:        cfg.AI.Provider,
		APIKey:          cfg.AI.APIKey,
		BaseURL:         cfg.AI.BaseURL,
		Model:           cfg.AI.Model,
		Timeout:         cfg.AI.Timeout,
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
	})
	if err != nil {
		logger.Error("failed to init ai client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !ai.IsConfigured(aiClient) {
		logger.Warn("ai api key is not set; purchase advice requests will fail", slog.String("provider", cfg.AI.Provider))
	}
	deps.AI = aiClient

	if cfg.Redis.QuotaEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis is unreachable; advice quota checks will fail open", slog.String("error", err.Error()))
		}
		limiter := quota.NewRedisLimiter(rdb, cfg.Redis.AdviceDailyQuota)
		logger.Info("advice quota enabled", slog.Int("daily_limit", limiter.Limit()))
		deps.Quota = limiter
	}

	e := server.New(cfg, logger, deps)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	go func() {
		logger.Info("http server started", slog.String("addr", httpServer.Addr), slog.String("store", cfg.Store.Driver), slog.String("ai_provider", cfg.AI.Provider))
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func parseLevel(value string) slog.Level {
	switch value {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
