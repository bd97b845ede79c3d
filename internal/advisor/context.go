package advisor

import (
	"time"

	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
)

// BuildContext собирает контекст решения из бюджетов и транзакций на момент now.
func BuildContext(req PurchaseAdviceRequest, budgets []models.Budget, transactions []models.Transaction, now time.Time) AdvisorContext {
	windowStart := now.Add(-LookbackDays * 24 * time.Hour)

	recent := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !tx.CreatedAt.Before(windowStart) {
			recent = append(recent, tx)
		}
	}

	budgetContexts := make([]BudgetContext, 0, len(budgets))
	var overallRemaining *float64

	for _, budget := range budgets {
		if budget.Period != models.BudgetPeriodWeekly {
			continue
		}

		spent := sumSpent(recent, budget.Category)
		remaining := decimal.Max(decimal.Zero, budget.LimitAmount.Sub(spent))

		budgetContexts = append(budgetContexts, BudgetContext{
			Category:    budget.Category,
			Period:      budget.Period,
			LimitAmount: budget.LimitAmount.InexactFloat64(),
			SpentSoFar:  spent.InexactFloat64(),
			Remaining:   remaining.InexactFloat64(),
		})

		if budget.Category == models.CategoryOverall && overallRemaining == nil {
			value := remaining.InexactFloat64()
			overallRemaining = &value
		}
	}

	var price *float64
	if req.Price != nil {
		value := req.Price.InexactFloat64()
		price = &value
	}

	return AdvisorContext{
		UserID:                 req.UserID,
		Message:                req.Message,
		Price:                  price,
		Category:               resolveCategory(req.Category),
		Budgets:                budgetContexts,
		OverallWeeklyRemaining: overallRemaining,
		RecentTransactionCount: len(transactions),
		TotalSpentLastWeek:     sumSpent(recent, models.CategoryOverall).InexactFloat64(),
	}
}

// sumSpent sums amounts of the given category; the overall category matches everything.
func sumSpent(transactions []models.Transaction, category string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if category == models.CategoryOverall || tx.Category == category {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func resolveCategory(category *string) string {
	if category == nil || *category == "" {
		return defaultCategory
	}
	return *category
}
