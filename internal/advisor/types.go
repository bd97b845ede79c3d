package advisor

import (
	"context"

	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
)

// LookbackDays is the trailing window the advisor reasons about.
const LookbackDays = 7

const defaultCategory = "general"

type BudgetSource interface {
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)
}

type TransactionSource interface {
	ListRecentTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error)
}

type PurchaseAdviceRequest struct {
	UserID   string
	Message  string
	Price    *decimal.Decimal
	Category *string
}

type PurchaseAdviceResponse struct {
	Status     models.AdviceStatus `json:"status"`
	Message    string              `json:"message"`
	Suggestion *string             `json:"suggestion,omitempty"`
}

type BudgetContext struct {
	Category    string              `json:"category"`
	Period      models.BudgetPeriod `json:"period"`
	LimitAmount float64             `json:"limitAmount"`
	SpentSoFar  float64             `json:"spentSoFar"`
	Remaining   float64             `json:"remaining"`
}

// AdvisorContext is exactly what the model gets to see. Optional values are
// pointers so that they serialize as explicit nulls.
type AdvisorContext struct {
	UserID                 string          `json:"userId"`
	Message                string          `json:"message"`
	Price                  *float64        `json:"price"`
	Category               string          `json:"category"`
	Budgets                []BudgetContext `json:"budgets"`
	OverallWeeklyRemaining *float64        `json:"overallWeeklyRemaining"`
	RecentTransactionCount int             `json:"recentTransactionCount"`
	TotalSpentLastWeek     float64         `json:"totalSpentLastWeek"`
}

type Prompt struct {
	System string
	User   string
}

// Trace keeps the intermediate artifacts of one advice call for the request log.
type Trace struct {
	Context AdvisorContext
	Prompt  Prompt
	Raw     string
}

type DailyTip struct {
	Date string `json:"date"`
	Tip  string `json:"tip"`
}
