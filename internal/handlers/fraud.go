package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/finance"
	"example.com/smartsave-campus/backend/internal/metrics"
)

type FraudCheckRequest struct {
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
	AverageAmount *float64 `json:"averageAmount" validate:"required,gte=0"`
	RecentCount   int      `json:"recentCount" validate:"gte=0"`
	CreatedAt     string   `json:"createdAt" validate:"required"`
}

// FraudCheck оценивает риск транзакции по простым правилам.
func FraudCheck(c echo.Context) error {
	var req FraudCheckRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	createdAt, err := time.Parse(time.RFC3339, req.CreatedAt)
	if err != nil {
		return fieldError(c, "createdAt", "Must be an RFC 3339 timestamp")
	}

	assessment := finance.AssessFraud(finance.FraudCheck{
		Amount:        decimal.NewFromFloat(*req.Amount),
		AverageAmount: decimal.NewFromFloat(*req.AverageAmount),
		RecentCount:   req.RecentCount,
		CreatedAt:     createdAt,
	})

	metrics.FraudChecksTotal.WithLabelValues(metrics.Flag(assessment.FraudFlag)).Inc()
	if assessment.FraudFlag {
		slog.Warn("transaction flagged", slog.Int("risk_score", assessment.RiskScore))
	}

	return c.JSON(http.StatusOK, assessment)
}
