package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetPeriod string

type AdviceStatus string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"

	// CategoryOverall is the reserved budget category that covers every transaction category.
	CategoryOverall = "overall"

	AdviceStatusGo      AdviceStatus = "GO"
	AdviceStatusCareful AdviceStatus = "CAREFUL"
	AdviceStatusNope    AdviceStatus = "NOPE"
)

func init() {
	// Деньги в JSON отдаются числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

// Valid сообщает, является ли период допустимым.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetPeriodWeekly || p == BudgetPeriodMonthly
}

// Valid сообщает, является ли статус одним из трех допустимых.
func (s AdviceStatus) Valid() bool {
	switch s {
	case AdviceStatusGo, AdviceStatusCareful, AdviceStatusNope:
		return true
	default:
		return false
	}
}

type Budget struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Category    string          `json:"category"`
	Period      BudgetPeriod    `json:"period"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Transaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Merchant     string          `json:"merchant"`
	CreatedAt    time.Time       `json:"createdAt"`
	Source       *string         `json:"source,omitempty"`
	RiskScore    *int            `json:"riskScore,omitempty"`
	FraudFlag    *bool           `json:"fraudFlag,omitempty"`
	FraudReasons []string        `json:"fraudReasons,omitempty"`
}

type Wallet struct {
	UserID    string          `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Savings   decimal.Decimal `json:"savings"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type AdviceLog struct {
	ID              uuid.UUID       `json:"id"`
	UserID          string          `json:"userId"`
	Provider        string          `json:"provider"`
	Model           string          `json:"model"`
	PromptVersion   string          `json:"promptVersion"`
	Prompt          string          `json:"prompt"`
	ContextPayload  json.RawMessage `json:"contextPayload,omitempty"`
	ResponsePayload json.RawMessage `json:"responsePayload,omitempty"`
	RawResponse     string          `json:"rawResponse,omitempty"`
	Status          *AdviceStatus   `json:"status,omitempty"`
	Success         bool            `json:"success"`
	ErrorKind       *string         `json:"errorKind,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
