package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"example.com/smartsave-campus/backend/internal/models"
)

// TestDeltaForTopUpAutoSaves проверяет автосбережение при пополнении.
func TestDeltaForTopUpAutoSaves(t *testing.T) {
	delta := DeltaFor(tx(CategoryTopUp, "100", trackerNow))

	assert.Equal(t, "90", delta.Balance.String())
	assert.Equal(t, "10", delta.Savings.String())
}

// TestDeltaForSaveToSavingsMovesMoney проверяет перевод в накопления.
func TestDeltaForSaveToSavingsMovesMoney(t *testing.T) {
	delta := DeltaFor(tx(CategorySaveToSavings, "25.5", trackerNow))

	assert.Equal(t, "-25.5", delta.Balance.String())
	assert.Equal(t, "25.5", delta.Savings.String())
}

// TestDeltaForSpendingReducesBalance проверяет списание с баланса.
func TestDeltaForSpendingReducesBalance(t *testing.T) {
	delta := DeltaFor(tx("food", "12", trackerNow))

	assert.Equal(t, "-12", delta.Balance.String())
	assert.True(t, delta.Savings.IsZero())
}

// TestWalletDeltaApply проверяет применение изменения к кошельку.
func TestWalletDeltaApply(t *testing.T) {
	wallet := models.Wallet{UserID: "student-1", Balance: decimal.NewFromInt(50), Savings: decimal.NewFromInt(5)}

	updated := DeltaFor(tx(CategoryTopUp, "20", trackerNow)).Apply(wallet, trackerNow)

	assert.Equal(t, "68", updated.Balance.String())
	assert.Equal(t, "7", updated.Savings.String())
	assert.Equal(t, trackerNow, updated.UpdatedAt)
	assert.Equal(t, "50", wallet.Balance.String())
}
