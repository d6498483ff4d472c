package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountTypeLength = 64
	MaxDescriptionLength = 255
	MaxPostingAmount     = "1000000000000" // 1 trillion
)

// Valid currency codes (ISO 4217, subset accepted by the service)
var validCurrencies = map[string]bool{
	"INR": true, "USD": true, "EUR": true, "GBP": true,
	"JPY": true, "CNY": true, "AUD": true, "CAD": true,
	"CHF": true, "SGD": true, "AED": true, "HKD": true,
}

// ValidateCurrency validates a currency code. Empty input is valid: the
// caller substitutes DefaultCurrency.
func ValidateCurrency(currency string) error {
	if currency == "" {
		return nil
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 code", ErrInvalidCurrency, currency)
	}

	return nil
}

// NormalizeCurrency returns the canonical upper-case currency code. Empty
// input maps to DefaultCurrency. Callers validate before normalizing, so
// stored records never carry mixed-case codes.
func NormalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return DefaultCurrency
	}

	return currency
}

// ValidateAmount validates a posting amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxPostingAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxPostingAmount)
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
