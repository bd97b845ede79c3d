package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/smartsave-campus/backend/internal/handlers"
)

type routeHandlers struct {
	advice        *handlers.AdviceHandler
	budgets       *handlers.BudgetHandler
	transactions  *handlers.TransactionHandler
	wallets       *handlers.WalletHandler
	tracker       *handlers.SpendingTrackerHandler
	notifications *handlers.NotificationHandler
}

func registerRoutes(e *echo.Echo, h routeHandlers, aiRateLimiter echo.MiddlewareFunc) {
	e.GET("/health", handlers.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/ai/purchase-advice", h.advice.PurchaseAdvice, aiRateLimiter)
	e.GET("/advice/daily", h.advice.DailyTip)

	budgets := e.Group("/budgets")
	budgets.POST("", h.budgets.Create)
	budgets.GET("/:userId", h.budgets.List)
	budgets.PUT("/:budgetId", h.budgets.Update)
	budgets.DELETE("/:budgetId", h.budgets.Delete)

	transactions := e.Group("/transactions")
	transactions.POST("", h.transactions.Create)
	transactions.GET("/:userId", h.transactions.List)
	transactions.GET("/:userId/category/:category", h.transactions.ListByCategory)
	transactions.GET("/:userId/export/csv", h.transactions.ExportCSV)

	e.GET("/wallets/:userId", h.wallets.Get)
	e.GET("/spending-tracker/:userId", h.tracker.Get)
	e.POST("/fraud-check", handlers.FraudCheck)
	e.GET("/fraud-alerts/:userId", h.transactions.FraudAlerts)

	e.GET("/notifications/stream", h.notifications.Stream)
}
