package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/smartsave-campus/backend/internal/advisor"
	"example.com/smartsave-campus/backend/internal/ai"
	"example.com/smartsave-campus/backend/internal/config"
	"example.com/smartsave-campus/backend/internal/handlers"
	"example.com/smartsave-campus/backend/internal/notifications"
	"example.com/smartsave-campus/backend/internal/repository"
)

// Dependencies are the process-wide resources the HTTP layer is built from.
type Dependencies struct {
	Stores repository.Stores
	AI     ai.Client
	// Quota is optional; nil disables the daily advice limit.
	Quota handlers.AdviceQuota
	Hub   *notifications.Hub
	// Now overrides the clock for the advisor, tips and tracker.
	Now func() time.Time
}

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, deps Dependencies) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Hub == nil {
		deps.Hub = notifications.NewHub()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
	}))
	e.Use(requestLogger(logger))

	adviceService := advisor.NewService(deps.Stores.Budgets, deps.Stores.Transactions, deps.AI).WithClock(deps.Now)

	adviceHandler := handlers.NewAdviceHandler(adviceService, deps.Stores.AdviceLogs, deps.Quota, deps.Hub, cfg.AI.Provider, cfg.AI.Model)
	adviceHandler.Now = deps.Now

	trackerHandler := handlers.NewSpendingTrackerHandler(deps.Stores.Budgets, deps.Stores.Transactions)
	trackerHandler.Now = deps.Now

	registerRoutes(e, routeHandlers{
		advice:        adviceHandler,
		budgets:       handlers.NewBudgetHandler(deps.Stores.Budgets),
		transactions:  handlers.NewTransactionHandler(deps.Stores.Transactions, deps.Stores.Wallets, deps.Hub),
		wallets:       handlers.NewWalletHandler(deps.Stores.Wallets),
		tracker:       trackerHandler,
		notifications: handlers.NewNotificationHandler(deps.Hub),
	}, aiRateLimiter(cfg.AI))

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func aiRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
