package domain

import "github.com/shopspring/decimal"

// ConsistencyReport summarizes ledger-wide invariant checks.
type ConsistencyReport struct {
	TotalCredits        decimal.Decimal
	TotalDebits         decimal.Decimal
	PendingTransactions int64
	UnbalancedTransfers int64
}

// Consistent reports whether the ledger holds its invariants: no transaction
// left pending outside an atomic unit, and every transfer's entries netting
// to zero.
func (r *ConsistencyReport) Consistent() bool {
	return r.PendingTransactions == 0 && r.UnbalancedTransfers == 0
}
