package domain

import "errors"

var (
	// Validation errors
	ErrOwnerRequired          = errors.New("owner is required")
	ErrAccountTypeRequired    = errors.New("account type is required")
	ErrAccountRequired        = errors.New("account id is required")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrSameAccount            = errors.New("cannot transfer to same account")
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// Lookup errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Business rule errors
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrStorage marks failures of the underlying store. Callers join it
	// with the driver error so both remain matchable with errors.Is.
	ErrStorage = errors.New("storage failure")
)
