package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCurrency indicates a currency code that is not a three-letter
	// ISO 4217 code. This is a caller bug, not a runtime condition.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrNoPayer indicates an expense without a payer id.
	ErrNoPayer = errors.New("expense has no payer")
)

// ParticipantShare is one participant's portion of one expense, resolved to
// integer minor units by the split-resolution step before it reaches the
// engine.
type ParticipantShare struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	ShareAmount int64  `json:"share_amount"`
}

// Expense is a single shared expense. Amount and all shares are integer
// minor units in Currency. FXRate is the historical conversion rate into the
// base currency captured when the expense was created; it is nil when no
// rate was recorded. The engine never substitutes a current market rate for
// it, so repeated settlements over the same expense set stay identical.
type Expense struct {
	ID           string             `json:"id"`
	Description  string             `json:"description,omitempty"`
	Amount       int64              `json:"amount"`
	Currency     string             `json:"currency"`
	PayerID      string             `json:"payer_id"`
	PayerName    string             `json:"payer_name,omitempty"`
	FXRate       *float64           `json:"fx_rate,omitempty"`
	Participants []ParticipantShare `json:"participants"`
}

// NormalizedAmount is the result of converting one expense amount into the
// base currency. NeedsFXRate signals a missing conversion rate; the expense
// must then be excluded from aggregation rather than treated as an error.
type NormalizedAmount struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	NeedsFXRate bool   `json:"needs_fx_rate"`
}

// ShareSumMismatchError reports an expense whose participant shares do not
// sum to the expense total. Only surfaced in strict-validation mode.
type ShareSumMismatchError struct {
	ExpenseID string
	Expected  int64
	Actual    int64
}

func (e *ShareSumMismatchError) Error() string {
	return fmt.Sprintf("expense %s: participant shares sum to %d, expected %d", e.ExpenseID, e.Actual, e.Expected)
}

// ValidCurrencyCode reports whether code looks like an ISO 4217 code:
// exactly three ASCII uppercase letters.
func ValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants callers must guarantee before
// handing an expense to the engine. Violations indicate a caller bug and
// fail fast.
func (e Expense) Validate() error {
	if !ValidCurrencyCode(e.Currency) {
		return fmt.Errorf("expense %s: currency %q: %w", e.ID, e.Currency, ErrInvalidCurrency)
	}
	if e.PayerID == "" {
		return fmt.Errorf("expense %s: %w", e.ID, ErrNoPayer)
	}
	for _, p := range e.Participants {
		if p.UserID == "" {
			return fmt.Errorf("expense %s: participant with empty user id", e.ID)
		}
	}
	return nil
}
