package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
)

const (
	CategoryTopUp         = "top-up"
	CategorySaveToSavings = "save-to-savings"
)

// autoSaveShare is the part of every top-up that goes straight to savings.
var autoSaveShare = decimal.RequireFromString("0.10")

type WalletDelta struct {
	Balance decimal.Decimal
	Savings decimal.Decimal
}

// DeltaFor возвращает изменение кошелька после транзакции.
func DeltaFor(tx models.Transaction) WalletDelta {
	switch tx.Category {
	case CategoryTopUp:
		saved := tx.Amount.Mul(autoSaveShare)
		return WalletDelta{Balance: tx.Amount.Sub(saved), Savings: saved}
	case CategorySaveToSavings:
		return WalletDelta{Balance: tx.Amount.Neg(), Savings: tx.Amount}
	default:
		return WalletDelta{Balance: tx.Amount.Neg(), Savings: decimal.Zero}
	}
}

// Apply применяет изменение к кошельку.
func (d WalletDelta) Apply(wallet models.Wallet, now time.Time) models.Wallet {
	wallet.Balance = wallet.Balance.Add(d.Balance)
	wallet.Savings = wallet.Savings.Add(d.Savings)
	wallet.UpdatedAt = now
	return wallet
}
