package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/models"
)

const uniqueViolation = "23505"

type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository создает репозиторий бюджетов.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// CreateBudget создает бюджет; пара категория+период уникальна для пользователя.
func (r *BudgetRepository) CreateBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	var created models.Budget

	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO budgets (id, user_id, category, period, limit_amount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, category, period, limit_amount, created_at`,
		budget.ID, budget.UserID, budget.Category, budget.Period, budget.LimitAmount,
	).Scan(&created.ID, &created.UserID, &created.Category, &created.Period, &created.LimitAmount, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return created, ErrConflict
		}
		return created, err
	}

	return created, nil
}

// ListBudgets возвращает бюджеты пользователя.
func (r *BudgetRepository) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, period, limit_amount, created_at
		 FROM budgets
		 WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		var budget models.Budget
		err := rows.Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Period, &budget.LimitAmount, &budget.CreatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return budgets, nil
}

// UpdateBudgetLimit меняет лимит бюджета.
func (r *BudgetRepository) UpdateBudgetLimit(ctx context.Context, budgetID string, limit decimal.Decimal) (models.Budget, error) {
	var budget models.Budget

	err := r.db.QueryRow(ctx,
		`UPDATE budgets
		 SET limit_amount = $2
		 WHERE id = $1
		 RETURNING id, user_id, category, period, limit_amount, created_at`,
		budgetID, limit,
	).Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Period, &budget.LimitAmount, &budget.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget, ErrNotFound
		}
		return budget, err
	}

	return budget, nil
}

// DeleteBudget удаляет бюджет.
func (r *BudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, budgetID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
