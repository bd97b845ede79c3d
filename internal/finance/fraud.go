package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	largeAmountFactor  = 3
	burstCountLimit    = 5
	fraudFlagThreshold = 70

	largeAmountScore = 40
	burstScore       = 40
	overnightScore   = 20
)

type FraudCheck struct {
	Amount        decimal.Decimal
	AverageAmount decimal.Decimal
	RecentCount   int
	CreatedAt     time.Time
}

type FraudAssessment struct {
	FraudFlag bool     `json:"fraudFlag"`
	RiskScore int      `json:"riskScore"`
	Reasons   []string `json:"reasons"`
}

// AssessFraud оценивает транзакцию простыми правилами.
func AssessFraud(check FraudCheck) FraudAssessment {
	assessment := FraudAssessment{Reasons: []string{}}

	if check.Amount.GreaterThan(check.AverageAmount.Mul(decimal.NewFromInt(largeAmountFactor))) {
		assessment.RiskScore += largeAmountScore
		assessment.Reasons = append(assessment.Reasons, "Unusually large amount")
	}

	if check.RecentCount > burstCountLimit {
		assessment.RiskScore += burstScore
		assessment.Reasons = append(assessment.Reasons, "Many transactions in last 10 minutes")
	}

	if hour := check.CreatedAt.UTC().Hour(); hour >= 1 && hour <= 5 {
		assessment.RiskScore += overnightScore
		assessment.Reasons = append(assessment.Reasons, "Unusual overnight transaction")
	}

	assessment.FraudFlag = assessment.RiskScore > fraudFlagThreshold
	return assessment
}
