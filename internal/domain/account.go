package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assigned to accounts and transactions created without
// an explicit currency.
const DefaultCurrency = "INR"

// Account represents a ledger account owned by a user. Balance is never
// stored: it is derived from the account's ledger entries and attached to
// the struct only when the account is read.
type Account struct {
	ID          string
	OwnerID     string
	AccountType string
	Currency    string
	Balance     decimal.Decimal
	CreatedAt   time.Time
}

// Validate checks the fields required at creation time.
func (a *Account) Validate() error {
	if a.OwnerID == "" {
		return ErrOwnerRequired
	}

	if a.AccountType == "" {
		return ErrAccountTypeRequired
	}

	return nil
}
