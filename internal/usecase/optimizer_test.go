package usecase_test

import (
	"testing"

	"trip-settlement/internal/domain"
	"trip-settlement/internal/usecase"

	"github.com/stretchr/testify/assert"
)

// applySettlements credits receivers and debits senders, returning the
// resulting per-user balances.
func applySettlements(balances []domain.UserBalance, settlements []domain.Settlement) map[string]int64 {
	remaining := make(map[string]int64)
	for _, b := range balances {
		remaining[b.UserID] = b.NetBalance
	}
	for _, s := range settlements {
		remaining[s.FromUserID] += s.Amount
		remaining[s.ToUserID] -= s.Amount
	}
	return remaining
}

func nonZeroCount(balances []domain.UserBalance) int {
	count := 0
	for _, b := range balances {
		if b.NetBalance != 0 {
			count++
		}
	}
	return count
}

func TestOptimizeSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances []domain.UserBalance
		want     []domain.Settlement
	}{
		{
			name: "single offsetting pair",
			balances: []domain.UserBalance{
				{UserID: "alice", NetBalance: 2000, Currency: "USD"},
				{UserID: "bob", NetBalance: -2000, Currency: "USD"},
			},
			want: []domain.Settlement{
				{FromUserID: "bob", ToUserID: "alice", Amount: 2000, Currency: "USD"},
			},
		},
		{
			name: "one minor unit still settles",
			balances: []domain.UserBalance{
				{UserID: "alice", NetBalance: 1, Currency: "USD"},
				{UserID: "bob", NetBalance: -1, Currency: "USD"},
			},
			want: []domain.Settlement{
				{FromUserID: "bob", ToUserID: "alice", Amount: 1, Currency: "USD"},
			},
		},
		{
			name: "largest creditor and debtor pair first",
			balances: []domain.UserBalance{
				{UserID: "alice", NetBalance: 10000, Currency: "USD"},
				{UserID: "bob", NetBalance: 5000, Currency: "USD"},
				{UserID: "charlie", NetBalance: -6000, Currency: "USD"},
				{UserID: "david", NetBalance: -5000, Currency: "USD"},
				{UserID: "eve", NetBalance: -4000, Currency: "USD"},
			},
			want: []domain.Settlement{
				{FromUserID: "charlie", ToUserID: "alice", Amount: 6000, Currency: "USD"},
				{FromUserID: "david", ToUserID: "bob", Amount: 5000, Currency: "USD"},
				{FromUserID: "eve", ToUserID: "alice", Amount: 4000, Currency: "USD"},
			},
		},
		{
			name:     "empty balances",
			balances: nil,
			want:     []domain.Settlement{},
		},
		{
			name: "all zero balances",
			balances: []domain.UserBalance{
				{UserID: "alice", NetBalance: 0, Currency: "USD"},
				{UserID: "bob", NetBalance: 0, Currency: "USD"},
			},
			want: []domain.Settlement{},
		},
		{
			name: "equal magnitudes tie-break by user id",
			balances: []domain.UserBalance{
				{UserID: "dana", NetBalance: 3000, Currency: "USD"},
				{UserID: "carol", NetBalance: 3000, Currency: "USD"},
				{UserID: "bob", NetBalance: -3000, Currency: "USD"},
				{UserID: "alice", NetBalance: -3000, Currency: "USD"},
			},
			want: []domain.Settlement{
				{FromUserID: "alice", ToUserID: "carol", Amount: 3000, Currency: "USD"},
				{FromUserID: "bob", ToUserID: "dana", Amount: 3000, Currency: "USD"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.OptimizeSettlements(tt.balances, "USD")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptimizeSettlements_Properties(t *testing.T) {
	balances := []domain.UserBalance{
		{UserID: "alice", NetBalance: 10000, Currency: "USD"},
		{UserID: "bob", NetBalance: 5000, Currency: "USD"},
		{UserID: "charlie", NetBalance: -6000, Currency: "USD"},
		{UserID: "david", NetBalance: -5000, Currency: "USD"},
		{UserID: "eve", NetBalance: -4000, Currency: "USD"},
		{UserID: "frank", NetBalance: 0, Currency: "USD"},
	}

	settlements := usecase.OptimizeSettlements(balances, "USD")

	t.Run("bounded transaction count", func(t *testing.T) {
		assert.LessOrEqual(t, len(settlements), nonZeroCount(balances)-1)
	})

	t.Run("total transferred equals total debt", func(t *testing.T) {
		var transferred int64
		for _, s := range settlements {
			transferred += s.Amount
		}
		assert.Equal(t, int64(15000), transferred)
	})

	t.Run("applying settlements zeroes every balance", func(t *testing.T) {
		for userID, remaining := range applySettlements(balances, settlements) {
			assert.Zerof(t, remaining, "user %s not settled", userID)
		}
	})

	t.Run("positive amounts and no self transfers", func(t *testing.T) {
		for _, s := range settlements {
			assert.Positive(t, s.Amount)
			assert.NotEqual(t, s.FromUserID, s.ToUserID)
		}
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			assert.Equal(t, settlements, usecase.OptimizeSettlements(balances, "USD"))
		}
	})
}
