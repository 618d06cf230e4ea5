package usecase

import (
	"fmt"
	"sort"

	"trip-settlement/internal/domain"
)

// AggregationResult is the outcome of folding an expense set into per-user
// net balances.
type AggregationResult struct {
	// Balances holds one entry per user seen as payer or participant,
	// sorted by user id.
	Balances []domain.UserBalance

	// ExcludedIDs lists expenses skipped for missing FX rates, in input order.
	ExcludedIDs []string

	// SettledCount is the number of expenses that entered the fold.
	SettledCount int

	// SettledTotal is the minor-unit sum of the normalized expense amounts.
	SettledTotal int64
}

// AggregateBalances folds a trip's expenses into one signed net balance per
// user in the base currency: each expense credits its payer with the
// normalized amount and debits every participant with their normalized
// share. A payer who also participates receives both adjustments, netting to
// the amount owed by others.
//
// Expenses that cannot be normalized (missing FX rate) are skipped entirely
// and reported through ExcludedIDs. With strict enabled, an expense whose
// shares do not sum to its total fails the fold with a
// ShareSumMismatchError; otherwise shares are taken as given, since the
// upstream split resolver owns that invariant.
func AggregateBalances(expenses []domain.Expense, baseCurrency string, strict bool) (*AggregationResult, error) {
	acc := make(map[string]int64)
	names := make(map[string]string)

	result := &AggregationResult{ExcludedIDs: []string{}}

	for _, e := range expenses {
		normalized, err := NormalizeAmount(e, baseCurrency)
		if err != nil {
			return nil, err
		}
		if normalized.NeedsFXRate {
			result.ExcludedIDs = append(result.ExcludedIDs, e.ID)
			continue
		}

		shareSum, err := sumShares(e)
		if err != nil {
			return nil, err
		}
		if strict && shareSum != e.Amount {
			return nil, &domain.ShareSumMismatchError{ExpenseID: e.ID, Expected: e.Amount, Actual: shareSum}
		}

		shares, err := normalizeShares(e, normalized, shareSum)
		if err != nil {
			return nil, err
		}

		if acc[e.PayerID], err = domain.AddChecked(acc[e.PayerID], normalized.Amount); err != nil {
			return nil, fmt.Errorf("expense %s: crediting payer %s: %w", e.ID, e.PayerID, err)
		}
		if e.PayerName != "" {
			names[e.PayerID] = e.PayerName
		}

		for i, p := range e.Participants {
			if acc[p.UserID], err = domain.AddChecked(acc[p.UserID], -shares[i]); err != nil {
				return nil, fmt.Errorf("expense %s: debiting user %s: %w", e.ID, p.UserID, err)
			}
			if p.UserName != "" && names[p.UserID] == "" {
				names[p.UserID] = p.UserName
			}
		}

		result.SettledCount++
		if result.SettledTotal, err = domain.AddChecked(result.SettledTotal, normalized.Amount); err != nil {
			return nil, fmt.Errorf("expense %s: totaling: %w", e.ID, err)
		}
	}

	ids := make([]string, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result.Balances = make([]domain.UserBalance, 0, len(ids))
	for _, id := range ids {
		result.Balances = append(result.Balances, domain.UserBalance{
			UserID:     id,
			UserName:   names[id],
			NetBalance: acc[id],
			Currency:   baseCurrency,
		})
	}

	return result, nil
}

func sumShares(e domain.Expense) (int64, error) {
	var sum int64
	var err error
	for _, p := range e.Participants {
		if sum, err = domain.AddChecked(sum, p.ShareAmount); err != nil {
			return 0, fmt.Errorf("expense %s: summing shares: %w", e.ID, err)
		}
	}
	return sum, nil
}

// normalizeShares converts each participant share into the base currency
// with the expense's FX-rate snapshot. Per-share rounding can leave the
// converted shares a few minor units away from the converted total; when the
// source shares summed exactly to the expense amount, that residue is folded
// into the last participant so the expense stays zero-sum after conversion.
// Mismatched source shares are left as converted, keeping the upstream
// inconsistency visible instead of masking it.
func normalizeShares(e domain.Expense, normalized domain.NormalizedAmount, shareSum int64) ([]int64, error) {
	shares := make([]int64, len(e.Participants))

	if e.Currency == normalized.Currency {
		for i, p := range e.Participants {
			shares[i] = p.ShareAmount
		}
		return shares, nil
	}

	var converted int64
	for i, p := range e.Participants {
		share, err := domain.MulRateChecked(p.ShareAmount, *e.FXRate)
		if err != nil {
			return nil, fmt.Errorf("expense %s: converting share for user %s: %w", e.ID, p.UserID, err)
		}
		shares[i] = share
		if converted, err = domain.AddChecked(converted, share); err != nil {
			return nil, fmt.Errorf("expense %s: summing converted shares: %w", e.ID, err)
		}
	}

	if len(shares) > 0 && shareSum == e.Amount {
		shares[len(shares)-1] += normalized.Amount - converted
	}

	return shares, nil
}
