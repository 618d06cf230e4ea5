package usecase

import (
	"fmt"

	"trip-settlement/internal/domain"
)

// NormalizeAmount converts one expense's amount into the base currency.
//
// Same-currency amounts pass through untouched. Cross-currency amounts are
// converted with the expense's stored FX-rate snapshot, rounding half away
// from zero — never with a current market rate, so repeated calls over the
// same expense set are bit-identical. A missing rate is signalled through
// NeedsFXRate rather than an error: the caller excludes the expense and
// reports it, instead of aborting the whole computation.
func NormalizeAmount(e domain.Expense, baseCurrency string) (domain.NormalizedAmount, error) {
	if e.Currency == baseCurrency {
		return domain.NormalizedAmount{Amount: e.Amount, Currency: baseCurrency}, nil
	}

	if e.FXRate == nil {
		return domain.NormalizedAmount{Amount: 0, Currency: baseCurrency, NeedsFXRate: true}, nil
	}

	converted, err := domain.MulRateChecked(e.Amount, *e.FXRate)
	if err != nil {
		return domain.NormalizedAmount{}, fmt.Errorf("expense %s: %w", e.ID, err)
	}
	return domain.NormalizedAmount{Amount: converted, Currency: baseCurrency}, nil
}
