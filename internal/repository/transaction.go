package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/smartsave-campus/backend/internal/models"
)

const transactionColumns = `id, user_id, amount, category, merchant, created_at, source, risk_score, fraud_flag, fraud_reasons`

type TransactionRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewTransactionRepository создает репозиторий транзакций.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db, now: time.Now}
}

// CreateTransaction сохраняет транзакцию.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO transactions (id, user_id, amount, category, merchant, source, risk_score, fraud_flag, fraud_reasons)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+transactionColumns,
		tx.ID, tx.UserID, tx.Amount, tx.Category, tx.Merchant, tx.Source, tx.RiskScore, tx.FraudFlag, tx.FraudReasons,
	)

	return scanTransaction(row)
}

// ListTransactions возвращает последние транзакции пользователя; limit <= 0 снимает ограничение.
func (r *TransactionRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return r.query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limitArg(limit),
	)
}

// ListTransactionsByCategory возвращает транзакции пользователя в категории.
func (r *TransactionRepository) ListTransactionsByCategory(ctx context.Context, userID, category string) ([]models.Transaction, error) {
	return r.query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE user_id = $1 AND category = $2
		 ORDER BY created_at DESC`,
		userID, category,
	)
}

// ListTransactionsSince возвращает транзакции начиная с момента since.
func (r *TransactionRepository) ListTransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	return r.query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE user_id = $1 AND created_at >= $2
		 ORDER BY created_at DESC`,
		userID, since,
	)
}

// ListRecentTransactions возвращает транзакции за последние days суток.
func (r *TransactionRepository) ListRecentTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error) {
	return r.ListTransactionsSince(ctx, userID, windowStart(r.now(), days))
}

// ListFlaggedTransactions возвращает транзакции, помеченные как подозрительные.
func (r *TransactionRepository) ListFlaggedTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return r.query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE user_id = $1 AND fraud_flag
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limitArg(limit),
	)
}

func (r *TransactionRepository) query(ctx context.Context, sql string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// limitArg maps a non-positive limit to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Amount,
		&tx.Category,
		&tx.Merchant,
		&tx.CreatedAt,
		&tx.Source,
		&tx.RiskScore,
		&tx.FraudFlag,
		&tx.FraudReasons,
	)
	return tx, err
}
