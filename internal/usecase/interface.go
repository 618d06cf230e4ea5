package usecase

import (
	"context"

	"trip-settlement/internal/domain"
)

// ExpenseRepository defines the interface for fetching a trip's expense set.
// The usecase layer depends on this interface, not on a concrete
// implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go ExpenseRepository
type ExpenseRepository interface {
	GetExpenses(ctx context.Context, path string) ([]domain.Expense, error)
}
