package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
)

type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository создает репозиторий кошельков.
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetWallet возвращает кошелек пользователя; пустой, если его еще нет.
func (r *WalletRepository) GetWallet(ctx context.Context, userID string) (models.Wallet, error) {
	wallet := models.Wallet{UserID: userID, Balance: decimal.Zero, Savings: decimal.Zero}

	err := r.db.QueryRow(ctx,
		`SELECT user_id, balance, savings, updated_at
		 FROM wallets
		 WHERE user_id = $1`,
		userID,
	).Scan(&wallet.UserID, &wallet.Balance, &wallet.Savings, &wallet.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return wallet, err
	}

	return wallet, nil
}

// ApplyWalletDelta атомарно прибавляет изменения к балансу и накоплениям.
func (r *WalletRepository) ApplyWalletDelta(ctx context.Context, userID string, balance, savings decimal.Decimal) (models.Wallet, error) {
	var wallet models.Wallet

	err := r.db.QueryRow(ctx,
		`INSERT INTO wallets (user_id, balance, savings, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET balance = wallets.balance + EXCLUDED.balance,
		     savings = wallets.savings + EXCLUDED.savings,
		     updated_at = NOW()
		 RETURNING user_id, balance, savings, updated_at`,
		userID, balance, savings,
	).Scan(&wallet.UserID, &wallet.Balance, &wallet.Savings, &wallet.UpdatedAt)

	return wallet, err
}
