package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
)

type BudgetStore interface {
	CreateBudget(ctx context.Context, budget models.Budget) (models.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	UpdateBudgetLimit(ctx context.Context, budgetID string, limit decimal.Decimal) (models.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	ListTransactionsByCategory(ctx context.Context, userID, category string) ([]models.Transaction, error)
	ListTransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error)
	ListRecentTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error)
	ListFlaggedTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

type WalletStore interface {
	GetWallet(ctx context.Context, userID string) (models.Wallet, error)
	ApplyWalletDelta(ctx context.Context, userID string, balance, savings decimal.Decimal) (models.Wallet, error)
}

type AdviceLogStore interface {
	LogAdvice(ctx context.Context, log models.AdviceLog) error
}

// Stores объединяет хранилища, которые нужны обработчикам.
type Stores struct {
	Budgets      BudgetStore
	Transactions TransactionStore
	Wallets      WalletStore
	AdviceLogs   AdviceLogStore
}

// NewPostgresStores собирает хранилища поверх пула PostgreSQL.
func NewPostgresStores(db *pgxpool.Pool) Stores {
	return Stores{
		Budgets:      NewBudgetRepository(db),
		Transactions: NewTransactionRepository(db),
		Wallets:      NewWalletRepository(db),
		AdviceLogs:   NewAdviceLogRepository(db),
	}
}

// windowStart возвращает начало окна из days последних суток.
func windowStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}
