package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
	"example.com/smartsave-campus/backend/internal/repository"
)

type BudgetHandler struct {
	Budgets repository.BudgetStore
}

// NewBudgetHandler создает обработчик бюджетов.
func NewBudgetHandler(budgets repository.BudgetStore) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets}
}

type CreateBudgetRequest struct {
	UserID      string   `json:"userId" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Period      string   `json:"period" validate:"required,oneof=weekly monthly"`
	LimitAmount *float64 `json:"limitAmount" validate:"required,gte=0"`
}

type UpdateBudgetRequest struct {
	LimitAmount *float64 `json:"limitAmount" validate:"required,gte=0"`
}

type BudgetListResponse struct {
	UserID  string          `json:"userId"`
	Budgets []models.Budget `json:"budgets"`
}

// Create создает бюджет пользователя.
func (h *BudgetHandler) Create(c echo.Context) error {
	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	budget, err := h.Budgets.CreateBudget(c.Request().Context(), models.Budget{
		UserID:      req.UserID,
		Category:    req.Category,
		Period:      models.BudgetPeriod(req.Period),
		LimitAmount: decimal.NewFromFloat(*req.LimitAmount),
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "Budget already exists for "+req.Category+" ("+req.Period+")")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, budget)
}

// List возвращает бюджеты пользователя.
func (h *BudgetHandler) List(c echo.Context) error {
	userID := c.Param("userId")

	budgets, err := h.Budgets.ListBudgets(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetListResponse{UserID: userID, Budgets: budgets})
}

// Update меняет лимит бюджета.
func (h *BudgetHandler) Update(c echo.Context) error {
	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	budget, err := h.Budgets.UpdateBudgetLimit(c.Request().Context(), c.Param("budgetId"), decimal.NewFromFloat(*req.LimitAmount))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, budget)
}

// Delete удаляет бюджет.
func (h *BudgetHandler) Delete(c echo.Context) error {
	if err := h.Budgets.DeleteBudget(c.Request().Context(), c.Param("budgetId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
}
