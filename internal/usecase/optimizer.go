package usecase

import (
	"trip-settlement/internal/domain"
)

// party is one side of the debt-netting worklist. remaining is always
// positive; debtors store the absolute value of their balance.
type party struct {
	id        string
	name      string
	remaining int64
}

// OptimizeSettlements converts a set of net balances into a minimal list of
// point-to-point transfers via greedy largest-first matching: repeatedly pair
// the largest remaining creditor with the largest remaining debtor and
// transfer the smaller of the two amounts. Zero balances are discarded up
// front, so the result holds at most n-1 settlements for n non-zero
// balances.
//
// Equal remaining magnitudes tie-break by user id ascending, which together
// with the sorted input makes the output order reproducible call over call.
// There is no minimum-amount threshold: a ±1 minor-unit pair still settles.
func OptimizeSettlements(balances []domain.UserBalance, currency string) []domain.Settlement {
	var creditors, debtors []*party
	for _, b := range balances {
		switch {
		case b.NetBalance > 0:
			creditors = append(creditors, &party{id: b.UserID, name: b.UserName, remaining: b.NetBalance})
		case b.NetBalance < 0:
			debtors = append(debtors, &party{id: b.UserID, name: b.UserName, remaining: -b.NetBalance})
		}
	}

	settlements := make([]domain.Settlement, 0)

	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := creditors[largest(creditors)]
		debtor := debtors[largest(debtors)]

		transfer := creditor.remaining
		if debtor.remaining < transfer {
			transfer = debtor.remaining
		}

		settlements = append(settlements, domain.Settlement{
			FromUserID:   debtor.id,
			FromUserName: debtor.name,
			ToUserID:     creditor.id,
			ToUserName:   creditor.name,
			Amount:       transfer,
			Currency:     currency,
		})

		creditor.remaining -= transfer
		debtor.remaining -= transfer
		creditors = pruneSettled(creditors)
		debtors = pruneSettled(debtors)
	}

	return settlements
}

// largest returns the index of the party with the biggest remaining amount,
// preferring the smaller user id on ties.
func largest(parties []*party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		if parties[i].remaining > parties[best].remaining ||
			(parties[i].remaining == parties[best].remaining && parties[i].id < parties[best].id) {
			best = i
		}
	}
	return best
}

func pruneSettled(parties []*party) []*party {
	active := parties[:0]
	for _, p := range parties {
		if p.remaining > 0 {
			active = append(active, p)
		}
	}
	return active
}
