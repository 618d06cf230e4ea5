package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"trip-settlement/internal/domain"
)

// expenseRecord is the on-disk shape of one expense. Participants may be
// given directly as resolved shares, or as a split specification that is
// resolved while loading.
type expenseRecord struct {
	ID           string                    `json:"id"`
	Description  string                    `json:"description"`
	Amount       int64                     `json:"amount"`
	Currency     string                    `json:"currency"`
	PayerID      string                    `json:"payer_id"`
	PayerName    string                    `json:"payer_name"`
	FXRate       *float64                  `json:"fx_rate"`
	Participants []domain.ParticipantShare `json:"participants"`
	Split        *splitRecord              `json:"split"`
}

type splitRecord struct {
	Type         domain.SplitType    `json:"type"`
	Participants []domain.SplitInput `json:"participants"`
}

type expenseDocument struct {
	Expenses []expenseRecord `json:"expenses"`
}

// JSONExpenseRepository implements the ExpenseRepository interface for JSON
// expense documents.
type JSONExpenseRepository struct{}

// NewJSONExpenseRepository creates a new repository instance.
func NewJSONExpenseRepository() *JSONExpenseRepository {
	return &JSONExpenseRepository{}
}

// GetExpenses reads and parses a trip's expense document. The file holds
// either a bare JSON array of expenses or an object with an "expenses"
// field. Expenses without an id are assigned one; split specifications are
// resolved into concrete shares before the expenses leave the gateway.
func (r *JSONExpenseRepository) GetExpenses(ctx context.Context, path string) ([]domain.Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expense file %s: %w", path, err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense file %s: %w", path, err)
	}

	expenses := make([]domain.Expense, 0, len(records))
	for i, rec := range records {
		expense, err := r.toExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: expense %d: %w", path, i, err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func decodeRecords(data []byte) ([]expenseRecord, error) {
	var records []expenseRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var doc expenseDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Expenses, nil
}

func (r *JSONExpenseRepository) toExpense(rec expenseRecord) (domain.Expense, error) {
	if !domain.ValidCurrencyCode(rec.Currency) {
		return domain.Expense{}, fmt.Errorf("currency %q: %w", rec.Currency, domain.ErrInvalidCurrency)
	}

	participants := rec.Participants
	if len(participants) == 0 && rec.Split != nil {
		resolved, err := domain.ResolveShares(rec.Split.Type, rec.Amount, rec.Split.Participants)
		if err != nil {
			return domain.Expense{}, fmt.Errorf("resolving split: %w", err)
		}
		participants = resolved
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	return domain.Expense{
		ID:           id,
		Description:  rec.Description,
		Amount:       rec.Amount,
		Currency:     rec.Currency,
		PayerID:      rec.PayerID,
		PayerName:    rec.PayerName,
		FXRate:       rec.FXRate,
		Participants: participants,
	}, nil
}
