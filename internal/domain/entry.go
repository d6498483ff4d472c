package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	EntryTypeCredit EntryType = "credit"
	EntryTypeDebit  EntryType = "debit"
)

// Entry is an immutable credit or debit record against one account, tied to
// exactly one transaction. Entries are append-only: nothing in this module
// updates or deletes an entry once it is written.
type Entry struct {
	ID            string
	AccountID     string
	TransactionID string
	Type          EntryType
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// Signed returns the entry amount with its sign applied: positive for
// credits, negative for debits. An account balance is the sum of its
// entries' signed amounts.
func (e *Entry) Signed() decimal.Decimal {
	if e.Type == EntryTypeDebit {
		return e.Amount.Neg()
	}

	return e.Amount
}
