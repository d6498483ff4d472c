package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of financial movement.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// TransactionStatus is the lifecycle state of a transaction. A transaction
// is inserted as pending and flipped to completed in the same atomic unit
// that writes its entries; failed is declared in the schema but never
// persisted, because failed postings roll back before commit.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction represents one financial movement composed of one or two
// ledger entries. Deposits carry a destination only, withdrawals a source
// only, transfers both.
type Transaction struct {
	ID                   string
	Type                 TransactionType
	Amount               decimal.Decimal
	Currency             string
	Status               TransactionStatus
	SourceAccountID      *string
	DestinationAccountID *string
	Description          string
	CreatedAt            time.Time
}

// Validate checks the structural invariant for the transaction type.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch t.Type {
	case TransactionTypeDeposit:
		if t.DestinationAccountID == nil || t.SourceAccountID != nil {
			return ErrAccountRequired
		}
	case TransactionTypeWithdrawal:
		if t.SourceAccountID == nil || t.DestinationAccountID != nil {
			return ErrAccountRequired
		}
	case TransactionTypeTransfer:
		if t.SourceAccountID == nil || t.DestinationAccountID == nil {
			return ErrAccountRequired
		}

		if *t.SourceAccountID == *t.DestinationAccountID {
			return ErrSameAccount
		}
	default:
		return ErrInvalidTransactionType
	}

	return nil
}
