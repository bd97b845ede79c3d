package advisor

import (
	"context"
	"fmt"
	"time"

	"example.com/smartsave-campus/backend/internal/ai"
)

type Service struct {
	budgets      BudgetSource
	transactions TransactionSource
	client       ai.Client
	now          func() time.Time
}

// NewService создает сервис покупательских советов.
func NewService(budgets BudgetSource, transactions TransactionSource, client ai.Client) *Service {
	return &Service{
		budgets:      budgets,
		transactions: transactions,
		client:       client,
		now:          time.Now,
	}
}

// WithClock подменяет источник текущего времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Advise прогоняет запрос через весь конвейер: данные, контекст, промпт, модель, проверка ответа.
func (s *Service) Advise(ctx context.Context, req PurchaseAdviceRequest) (PurchaseAdviceResponse, Trace, error) {
	var trace Trace

	budgets, err := s.budgets.ListBudgets(ctx, req.UserID)
	if err != nil {
		return PurchaseAdviceResponse{}, trace, fmt.Errorf("load budgets: %w", err)
	}

	transactions, err := s.transactions.ListRecentTransactions(ctx, req.UserID, LookbackDays)
	if err != nil {
		return PurchaseAdviceResponse{}, trace, fmt.Errorf("load transactions: %w", err)
	}

	trace.Context = BuildContext(req, budgets, transactions, s.now())

	trace.Prompt, err = ComposePrompt(trace.Context)
	if err != nil {
		return PurchaseAdviceResponse{}, trace, err
	}

	trace.Raw, err = s.client.Generate(ctx, trace.Prompt.System, trace.Prompt.User)
	if err != nil {
		return PurchaseAdviceResponse{}, trace, fmt.Errorf("generate advice: %w", err)
	}

	response, err := ParseResponse(trace.Raw)
	if err != nil {
		return PurchaseAdviceResponse{}, trace, err
	}

	return response, trace, nil
}
