package domain

// UserBalance is one user's signed net position in the base currency.
// Positive means others owe them, negative means they owe others. Built
// fresh on every settlement computation; never persisted by the engine.
type UserBalance struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	NetBalance int64  `json:"net_balance"`
	Currency   string `json:"currency"`
}

// Settlement is a single directed transfer that reduces one debtor's and one
// creditor's outstanding balance. Amount is always positive and the two user
// ids always differ.
type Settlement struct {
	FromUserID   string `json:"from_user_id"`
	FromUserName string `json:"from_user_name,omitempty"`
	ToUserID     string `json:"to_user_id"`
	ToUserName   string `json:"to_user_name,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// SettlementSummary is the top-level result of settling one trip's expense
// set into a base currency.
type SettlementSummary struct {
	BaseCurrency string `json:"base_currency"`

	// Balances holds one entry per user appearing as payer or participant,
	// sorted by user id.
	Balances []UserBalance `json:"balances"`

	// Settlements is the minimal transfer list that zeroes every balance.
	Settlements []Settlement `json:"settlements"`

	// TotalExpenses counts the expenses that entered the aggregation.
	TotalExpenses int `json:"total_expenses"`

	// TotalSettled is the minor-unit sum of the aggregated expense amounts
	// in the base currency.
	TotalSettled int64 `json:"total_settled"`

	// ExcludedExpenses lists ids of expenses skipped for missing FX rates.
	// Recoverable by the caller: supply a rate and recompute.
	ExcludedExpenses []string `json:"excluded_expenses"`
}
