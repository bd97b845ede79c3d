package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/smartsave-campus/backend/internal/finance"
	"example.com/smartsave-campus/backend/internal/repository"
)

type SpendingTrackerHandler struct {
	Budgets      repository.BudgetStore
	Transactions repository.TransactionStore
	Now          func() time.Time
}

// NewSpendingTrackerHandler создает обработчик трекера расходов.
func NewSpendingTrackerHandler(budgets repository.BudgetStore, transactions repository.TransactionStore) *SpendingTrackerHandler {
	return &SpendingTrackerHandler{
		Budgets:      budgets,
		Transactions: transactions,
		Now:          time.Now,
	}
}

type SpendingTrackerResponse struct {
	UserID  string                `json:"userId"`
	Budgets []finance.BudgetUsage `json:"budgets"`
	Message string                `json:"message,omitempty"`
}

// Get возвращает расход по каждому бюджету за текущий период.
func (h *SpendingTrackerHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")
	now := h.Now()

	budgets, err := h.Budgets.ListBudgets(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	if len(budgets) == 0 {
		return c.JSON(http.StatusOK, SpendingTrackerResponse{
			UserID:  userID,
			Budgets: []finance.BudgetUsage{},
			Message: "No budgets found",
		})
	}

	transactions, err := h.Transactions.ListTransactionsSince(ctx, userID, finance.EarliestPeriodStart(budgets, now))
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, SpendingTrackerResponse{
		UserID:  userID,
		Budgets: finance.TrackBudgets(budgets, transactions, now),
	})
}
