package usecase

import (
	"context"
	"fmt"

	"trip-settlement/internal/domain"
)

type options struct {
	strictShares bool
}

// Option configures a settlement computation.
type Option func(*options)

// WithStrictShares makes the computation fail with a ShareSumMismatchError
// when an expense's participant shares do not sum to its total. Off by
// default: the upstream split resolver normally guarantees that invariant.
func WithStrictShares() Option {
	return func(o *options) {
		o.strictShares = true
	}
}

// ComputeSettlementSummary settles one trip's expense set into the base
// currency: normalize each expense, fold into per-user net balances, and
// reduce the balances to a minimal transfer list. Pure computation — no I/O,
// no shared state, and identical input always yields identical output
// (including ordering).
//
// Expenses must already carry resolved participant shares; split resolution
// happens at expense-creation time, not here.
func ComputeSettlementSummary(expenses []domain.Expense, baseCurrency string, opts ...Option) (*domain.SettlementSummary, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if !domain.ValidCurrencyCode(baseCurrency) {
		return nil, fmt.Errorf("base currency %q: %w", baseCurrency, domain.ErrInvalidCurrency)
	}
	for _, e := range expenses {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	aggregation, err := AggregateBalances(expenses, baseCurrency, o.strictShares)
	if err != nil {
		return nil, err
	}

	return &domain.SettlementSummary{
		BaseCurrency:     baseCurrency,
		Balances:         aggregation.Balances,
		Settlements:      OptimizeSettlements(aggregation.Balances, baseCurrency),
		TotalExpenses:    aggregation.SettledCount,
		TotalSettled:     aggregation.SettledTotal,
		ExcludedExpenses: aggregation.ExcludedIDs,
	}, nil
}

// SettlementUseCase orchestrates the settlement process over a stored
// expense set.
type SettlementUseCase struct {
	repo ExpenseRepository
	opts []Option
}

// NewSettlementUseCase creates a new instance of the usecase.
func NewSettlementUseCase(repo ExpenseRepository, opts ...Option) *SettlementUseCase {
	return &SettlementUseCase{repo: repo, opts: opts}
}

// Settle loads the trip's expenses and computes their settlement summary.
func (uc *SettlementUseCase) Settle(ctx context.Context, path, baseCurrency string) (*domain.SettlementSummary, error) {
	expenses, err := uc.repo.GetExpenses(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not get expenses: %w", err)
	}
	return ComputeSettlementSummary(expenses, baseCurrency, uc.opts...)
}
