package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/finance"
	"example.com/smartsave-campus/backend/internal/models"
)

// DemoUserID is the user that receives the demo budgets and transactions.
const DemoUserID = "demo-user"

// MemoryStore keeps everything in process memory. It implements every store
// interface and is meant for local runs and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	budgets      []models.Budget
	transactions []models.Transaction
	wallets      map[string]models.Wallet
	adviceLogs   []models.AdviceLog
	now          func() time.Time
}

// NewMemoryStore создает пустое хранилище в памяти.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		wallets: make(map[string]models.Wallet),
		now:     now,
	}
}

// Stores возвращает хранилище под всеми интерфейсами сразу.
func (s *MemoryStore) Stores() Stores {
	return Stores{Budgets: s, Transactions: s, Wallets: s, AdviceLogs: s}
}

// SeedDemo добавляет демо-бюджеты и транзакции для DemoUserID.
func (s *MemoryStore) SeedDemo() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.budgets = append(s.budgets,
		models.Budget{ID: "demo-fun-weekly", UserID: DemoUserID, Category: "shopping", Period: models.BudgetPeriodWeekly, LimitAmount: decimal.NewFromInt(100), CreatedAt: now},
		models.Budget{ID: "demo-food-weekly", UserID: DemoUserID, Category: "food", Period: models.BudgetPeriodWeekly, LimitAmount: decimal.NewFromInt(80), CreatedAt: now},
		models.Budget{ID: "demo-overall-weekly", UserID: DemoUserID, Category: models.CategoryOverall, Period: models.BudgetPeriodWeekly, LimitAmount: decimal.NewFromInt(200), CreatedAt: now},
	)
	s.transactions = append(s.transactions,
		models.Transaction{ID: "t1", UserID: DemoUserID, Amount: decimal.NewFromInt(15), Category: "food", Merchant: "Campus Cafe", CreatedAt: now},
		models.Transaction{ID: "t2", UserID: DemoUserID, Amount: decimal.NewFromInt(20), Category: "shopping", Merchant: "Bookstore", CreatedAt: now},
	)
}

func (s *MemoryStore) CreateBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.budgets {
		if existing.UserID == budget.UserID && existing.Category == budget.Category && existing.Period == budget.Period {
			return models.Budget{}, ErrConflict
		}
	}

	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	budget.CreatedAt = s.now()
	s.budgets = append(s.budgets, budget)

	return budget, nil
}

func (s *MemoryStore) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budgets := make([]models.Budget, 0)
	for _, budget := range s.budgets {
		if budget.UserID == userID {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}

func (s *MemoryStore) UpdateBudgetLimit(ctx context.Context, budgetID string, limit decimal.Decimal) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].ID == budgetID {
			s.budgets[i].LimitAmount = limit
			return s.budgets[i], nil
		}
	}
	return models.Budget{}, ErrNotFound
}

func (s *MemoryStore) DeleteBudget(ctx context.Context, budgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].ID == budgetID {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now()
	}
	tx.FraudReasons = cloneStrings(tx.FraudReasons)
	s.transactions = append(s.transactions, tx)

	return tx, nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	transactions := s.filterTransactions(func(tx models.Transaction) bool {
		return tx.UserID == userID
	})
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func (s *MemoryStore) ListTransactionsByCategory(ctx context.Context, userID, category string) ([]models.Transaction, error) {
	return s.filterTransactions(func(tx models.Transaction) bool {
		return tx.UserID == userID && tx.Category == category
	}), nil
}

func (s *MemoryStore) ListTransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	return s.filterTransactions(func(tx models.Transaction) bool {
		return tx.UserID == userID && !tx.CreatedAt.Before(since)
	}), nil
}

func (s *MemoryStore) ListRecentTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error) {
	return s.ListTransactionsSince(ctx, userID, windowStart(s.now(), days))
}

func (s *MemoryStore) ListFlaggedTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	transactions := s.filterTransactions(func(tx models.Transaction) bool {
		return tx.UserID == userID && tx.FraudFlag != nil && *tx.FraudFlag
	})
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func (s *MemoryStore) GetWallet(ctx context.Context, userID string) (models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if wallet, ok := s.wallets[userID]; ok {
		return wallet, nil
	}
	return models.Wallet{UserID: userID, Balance: decimal.Zero, Savings: decimal.Zero}, nil
}

func (s *MemoryStore) ApplyWalletDelta(ctx context.Context, userID string, balance, savings decimal.Decimal) (models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[userID]
	if !ok {
		wallet = models.Wallet{UserID: userID, Balance: decimal.Zero, Savings: decimal.Zero}
	}
	wallet = finance.WalletDelta{Balance: balance, Savings: savings}.Apply(wallet, s.now())
	s.wallets[userID] = wallet

	return wallet, nil
}

func (s *MemoryStore) LogAdvice(ctx context.Context, log models.AdviceLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = s.now()
	s.adviceLogs = append(s.adviceLogs, log)
	return nil
}

// AdviceLogs возвращает копию журнала советов.
func (s *MemoryStore) AdviceLogs() []models.AdviceLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]models.AdviceLog, len(s.adviceLogs))
	copy(logs, s.adviceLogs)
	return logs
}

// filterTransactions returns matching transactions, newest first.
func (s *MemoryStore) filterTransactions(match func(models.Transaction) bool) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]models.Transaction, 0)
	for _, tx := range s.transactions {
		if match(tx) {
			tx.FraudReasons = cloneStrings(tx.FraudReasons)
			transactions = append(transactions, tx)
		}
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
