package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestAssessFraudCleanTransaction проверяет обычную транзакцию.
func TestAssessFraudCleanTransaction(t *testing.T) {
	got := AssessFraud(FraudCheck{
		Amount:        decimal.NewFromInt(20),
		AverageAmount: decimal.NewFromInt(15),
		RecentCount:   1,
		CreatedAt:     time.Date(2024, time.March, 14, 13, 0, 0, 0, time.UTC),
	})

	assert.False(t, got.FraudFlag)
	assert.Zero(t, got.RiskScore)
	assert.Empty(t, got.Reasons)
	assert.NotNil(t, got.Reasons)
}

// TestAssessFraudLargeAmountAlone проверяет одну крупную сумму.
func TestAssessFraudLargeAmountAlone(t *testing.T) {
	got := AssessFraud(FraudCheck{
		Amount:        decimal.NewFromInt(46),
		AverageAmount: decimal.NewFromInt(15),
		CreatedAt:     time.Date(2024, time.March, 14, 13, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, 40, got.RiskScore)
	assert.False(t, got.FraudFlag)
	assert.Equal(t, []string{"Unusually large amount"}, got.Reasons)
}

// TestAssessFraudExactlyThreeTimesAverageIsNotLarge проверяет границу в три средних.
func TestAssessFraudExactlyThreeTimesAverageIsNotLarge(t *testing.T) {
	got := AssessFraud(FraudCheck{
		Amount:        decimal.NewFromInt(45),
		AverageAmount: decimal.NewFromInt(15),
		CreatedAt:     time.Date(2024, time.March, 14, 13, 0, 0, 0, time.UTC),
	})

	assert.Zero(t, got.RiskScore)
}

// TestAssessFraudLargeAndBurstIsFlagged проверяет флаг при крупной сумме и серии операций.
func TestAssessFraudLargeAndBurstIsFlagged(t *testing.T) {
	got := AssessFraud(FraudCheck{
		Amount:        decimal.NewFromInt(100),
		AverageAmount: decimal.NewFromInt(10),
		RecentCount:   6,
		CreatedAt:     time.Date(2024, time.March, 14, 13, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, 80, got.RiskScore)
	assert.True(t, got.FraudFlag)
}

// TestAssessFraudOvernightWindow проверяет ночное окно по UTC.
func TestAssessFraudOvernightWindow(t *testing.T) {
	for hour, want := range map[int]int{0: 0, 1: 20, 5: 20, 6: 0} {
		got := AssessFraud(FraudCheck{
			Amount:        decimal.NewFromInt(1),
			AverageAmount: decimal.NewFromInt(1),
			CreatedAt:     time.Date(2024, time.March, 14, hour, 30, 0, 0, time.UTC),
		})
		assert.Equal(t, want, got.RiskScore, "hour %d", hour)
	}
}

// TestAssessFraudAllRulesFire проверяет срабатывание всех правил.
func TestAssessFraudAllRulesFire(t *testing.T) {
	got := AssessFraud(FraudCheck{
		Amount:        decimal.NewFromInt(500),
		AverageAmount: decimal.NewFromInt(20),
		RecentCount:   9,
		CreatedAt:     time.Date(2024, time.March, 14, 3, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, 100, got.RiskScore)
	assert.True(t, got.FraudFlag)
	assert.Len(t, got.Reasons, 3)
}
