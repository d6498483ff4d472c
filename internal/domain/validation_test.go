package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		currency string
		wantErr  bool
	}{
		{"INR", false},
		{"USD", false},
		{"eur", false},
		{" GBP ", false},
		{"", false}, // empty defaults upstream
		{"XYZ", true},
		{"RUPEE", true},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			err := ValidateCurrency(tt.currency)
			if tt.wantErr && !errors.Is(err, ErrInvalidCurrency) {
				t.Errorf("expected ErrInvalidCurrency, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		currency string
		want     string
	}{
		{"", "INR"},
		{"usd", "USD"},
		{" eur ", "EUR"},
		{"GBP", "GBP"},
	}

	for _, tt := range tests {
		if got := NormalizeCurrency(tt.currency); got != tt.want {
			t.Errorf("NormalizeCurrency(%q) = %q, want %q", tt.currency, got, tt.want)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.NewFromInt(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !errors.Is(ValidateAmount(decimal.Zero), ErrInvalidAmount) {
		t.Error("expected ErrInvalidAmount for zero")
	}

	if !errors.Is(ValidateAmount(decimal.NewFromInt(-5)), ErrInvalidAmount) {
		t.Error("expected ErrInvalidAmount for negative")
	}

	huge, _ := decimal.NewFromString("1000000000001")
	if !errors.Is(ValidateAmount(huge), ErrAmountTooLarge) {
		t.Error("expected ErrAmountTooLarge above limit")
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -1)
	if limit != 20 || offset != 0 {
		t.Errorf("expected defaults 20/0, got %d/%d", limit, offset)
	}

	limit, _ = ValidatePagination(500, 0)
	if limit != 100 {
		t.Errorf("expected limit clamped to 100, got %d", limit)
	}
}
