package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/bankbook/internal/domain"
)

// EntryUseCase handles ledger entry queries.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
	}
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists an account's entries ordered by creation time
// ascending. An account with no entries yields an empty slice.
func (uc *EntryUseCase) ListByAccount(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	if input.AccountID == "" {
		return nil, domain.ErrAccountRequired
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// GetBalance derives the account balance: sum of credits minus sum of
// debits over committed entries. No entries means zero, not an error.
func (uc *EntryUseCase) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if accountID == "" {
		return decimal.Zero, domain.ErrAccountRequired
	}

	return uc.entryRepo.GetBalance(ctx, accountID)
}
