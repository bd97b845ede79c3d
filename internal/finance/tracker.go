package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
)

type SpendingStatus string

const (
	SpendingUnder SpendingStatus = "under"
	SpendingNear  SpendingStatus = "near"
	SpendingOver  SpendingStatus = "over"
)

var (
	nearThreshold = decimal.NewFromInt(80)
	overThreshold = decimal.NewFromInt(100)
)

type BudgetUsage struct {
	BudgetID       string              `json:"budgetId"`
	Category       string              `json:"category"`
	Period         models.BudgetPeriod `json:"period"`
	BudgetLimit    decimal.Decimal     `json:"budgetLimit"`
	Spent          decimal.Decimal     `json:"spent"`
	Remaining      decimal.Decimal     `json:"remaining"`
	PercentageUsed decimal.Decimal     `json:"percentageUsed"`
	Status         SpendingStatus      `json:"status"`
}

// PeriodStart возвращает начало текущего периода бюджета в UTC.
// Неделя начинается в понедельник, месяц с первого числа.
func PeriodStart(period models.BudgetPeriod, now time.Time) time.Time {
	utc := now.UTC()
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	if period == models.BudgetPeriodWeekly {
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	}

	return time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TrackBudget считает расход по бюджету за его текущий период.
func TrackBudget(budget models.Budget, transactions []models.Transaction, now time.Time) BudgetUsage {
	start := PeriodStart(budget.Period, now)

	spent := decimal.Zero
	for _, tx := range transactions {
		if tx.CreatedAt.Before(start) {
			continue
		}
		if budget.Category == models.CategoryOverall || tx.Category == budget.Category {
			spent = spent.Add(tx.Amount)
		}
	}

	percentage := decimal.Zero
	if budget.LimitAmount.IsPositive() {
		percentage = spent.Div(budget.LimitAmount).Mul(overThreshold)
	}

	return BudgetUsage{
		BudgetID:       budget.ID,
		Category:       budget.Category,
		Period:         budget.Period,
		BudgetLimit:    budget.LimitAmount,
		Spent:          spent.Round(2),
		Remaining:      budget.LimitAmount.Sub(spent).Round(2),
		PercentageUsed: percentage.Round(2),
		Status:         statusFor(percentage),
	}
}

// TrackBudgets считает расход по каждому бюджету пользователя.
func TrackBudgets(budgets []models.Budget, transactions []models.Transaction, now time.Time) []BudgetUsage {
	usage := make([]BudgetUsage, 0, len(budgets))
	for _, budget := range budgets {
		usage = append(usage, TrackBudget(budget, transactions, now))
	}
	return usage
}

// EarliestPeriodStart returns the oldest period start among budgets, so one
// transaction query can cover all of them.
func EarliestPeriodStart(budgets []models.Budget, now time.Time) time.Time {
	earliest := PeriodStart(models.BudgetPeriodWeekly, now)
	for _, budget := range budgets {
		if start := PeriodStart(budget.Period, now); start.Before(earliest) {
			earliest = start
		}
	}
	return earliest
}

func statusFor(percentage decimal.Decimal) SpendingStatus {
	switch {
	case percentage.GreaterThanOrEqual(overThreshold):
		return SpendingOver
	case percentage.GreaterThanOrEqual(nearThreshold):
		return SpendingNear
	default:
		return SpendingUnder
	}
}
