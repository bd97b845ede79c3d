package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/finance"
	"example.com/smartsave-campus/backend/internal/metrics"
	"example.com/smartsave-campus/backend/internal/models"
	"example.com/smartsave-campus/backend/internal/notifications"
	"example.com/smartsave-campus/backend/internal/repository"
)

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 200
	fraudAlertLimit         = 20
)

type TransactionHandler struct {
	Transactions repository.TransactionStore
	Wallets      repository.WalletStore
	Notifier     *notifications.Hub
}

// NewTransactionHandler создает обработчик транзакций.
func NewTransactionHandler(transactions repository.TransactionStore, wallets repository.WalletStore, notifier *notifications.Hub) *TransactionHandler {
	return &TransactionHandler{
		Transactions: transactions,
		Wallets:      wallets,
		Notifier:     notifier,
	}
}

type CreateTransactionRequest struct {
	UserID       string   `json:"userId" validate:"required"`
	Amount       *float64 `json:"amount" validate:"required,gt=0"`
	Category     string   `json:"category" validate:"required"`
	Merchant     string   `json:"merchant"`
	Source       *string  `json:"source"`
	RiskScore    *int     `json:"riskScore" validate:"omitnil,gte=0,lte=100"`
	FraudFlag    *bool    `json:"fraudFlag"`
	FraudReasons []string `json:"fraudReasons"`
}

type TransactionListResponse struct {
	UserID       string               `json:"userId"`
	Transactions []models.Transaction `json:"transactions"`
}

// Create сохраняет транзакцию и обновляет кошелек пользователя.
func (h *TransactionHandler) Create(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	ctx := c.Request().Context()

	tx, err := h.Transactions.CreateTransaction(ctx, models.Transaction{
		UserID:       req.UserID,
		Amount:       decimal.NewFromFloat(*req.Amount),
		Category:     req.Category,
		Merchant:     req.Merchant,
		Source:       req.Source,
		RiskScore:    req.RiskScore,
		FraudFlag:    req.FraudFlag,
		FraudReasons: req.FraudReasons,
	})
	if err != nil {
		return serverError(c)
	}

	flagged := tx.FraudFlag != nil && *tx.FraudFlag
	metrics.TransactionsCreatedTotal.WithLabelValues(tx.Category, metrics.Flag(flagged)).Inc()

	h.applyWallet(ctx, tx)

	if flagged && h.Notifier != nil {
		h.Notifier.Publish(tx.UserID, notifications.Event{
			Type: notifications.EventFraudFlagged,
			Data: map[string]interface{}{
				"transactionId": tx.ID,
				"reasons":       tx.FraudReasons,
			},
		})
	}

	return c.JSON(http.StatusCreated, tx)
}

// applyWallet применяет транзакцию к кошельку. Ошибка не отменяет саму транзакцию.
func (h *TransactionHandler) applyWallet(ctx context.Context, tx models.Transaction) {
	if h.Wallets == nil {
		return
	}

	delta := finance.DeltaFor(tx)
	wallet, err := h.Wallets.ApplyWalletDelta(ctx, tx.UserID, delta.Balance, delta.Savings)
	if err != nil {
		slog.Error("failed to update wallet",
			slog.String("user_id", tx.UserID),
			slog.String("transaction_id", tx.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	if h.Notifier != nil {
		h.Notifier.Publish(tx.UserID, notifications.Event{
			Type: notifications.EventWalletUpdated,
			Data: wallet,
		})
	}
}

// List возвращает последние транзакции пользователя.
func (h *TransactionHandler) List(c echo.Context) error {
	userID := c.Param("userId")

	limit := defaultTransactionLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxTransactionLimit {
			return fieldError(c, "limit", "Must be an integer between 1 and "+strconv.Itoa(maxTransactionLimit))
		}
		limit = parsed
	}

	transactions, err := h.Transactions.ListTransactions(c.Request().Context(), userID, limit)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TransactionListResponse{UserID: userID, Transactions: transactions})
}

// ListByCategory возвращает транзакции пользователя в одной категории.
func (h *TransactionHandler) ListByCategory(c echo.Context) error {
	userID := c.Param("userId")

	transactions, err := h.Transactions.ListTransactionsByCategory(c.Request().Context(), userID, c.Param("category"))
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TransactionListResponse{UserID: userID, Transactions: transactions})
}

// FraudAlerts возвращает последние подозрительные транзакции.
func (h *TransactionHandler) FraudAlerts(c echo.Context) error {
	userID := c.Param("userId")

	transactions, err := h.Transactions.ListFlaggedTransactions(c.Request().Context(), userID, fraudAlertLimit)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TransactionListResponse{UserID: userID, Transactions: transactions})
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}
