package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/bankbook/internal/domain"
	"github.com/iho/bankbook/internal/usecase"
	"github.com/iho/bankbook/internal/usecase/mocks"
)

func TestEntryUseCase_ListByAccount(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo)

	ctx := context.Background()

	entryRepo.Create(ctx, nil, &domain.Entry{ID: "e1", AccountID: "acc-1", Type: domain.EntryTypeCredit, Amount: decimal.NewFromInt(100)})
	entryRepo.Create(ctx, nil, &domain.Entry{ID: "e2", AccountID: "acc-1", Type: domain.EntryTypeDebit, Amount: decimal.NewFromInt(40)})
	entryRepo.Create(ctx, nil, &domain.Entry{ID: "e3", AccountID: "acc-2", Type: domain.EntryTypeCredit, Amount: decimal.NewFromInt(5)})

	entries, err := uc.ListByAccount(ctx, usecase.ListEntriesInput{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Oldest first.
	if entries[0].ID != "e1" || entries[1].ID != "e2" {
		t.Errorf("expected entries in creation order, got %s, %s", entries[0].ID, entries[1].ID)
	}
}

func TestEntryUseCase_ListByAccount_Empty(t *testing.T) {
	uc := usecase.NewEntryUseCase(mocks.NewMockEntryRepository())

	entries, err := uc.ListByAccount(context.Background(), usecase.ListEntriesInput{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("expected empty result, not error: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestEntryUseCase_ListByAccount_MissingID(t *testing.T) {
	uc := usecase.NewEntryUseCase(mocks.NewMockEntryRepository())

	_, err := uc.ListByAccount(context.Background(), usecase.ListEntriesInput{})
	if !errors.Is(err, domain.ErrAccountRequired) {
		t.Fatalf("expected ErrAccountRequired, got %v", err)
	}
}

func TestEntryUseCase_GetBalance_Idempotent(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo)

	ctx := context.Background()

	entryRepo.Create(ctx, nil, &domain.Entry{ID: "e1", AccountID: "acc-1", Type: domain.EntryTypeCredit, Amount: decimal.NewFromInt(100)})

	first, err := uc.GetBalance(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.GetBalance(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("balance reads with no intervening writes differ: %s vs %s", first, second)
	}
}

func TestEntryUseCase_GetBalance_NoEntries(t *testing.T) {
	uc := usecase.NewEntryUseCase(mocks.NewMockEntryRepository())

	balance, err := uc.GetBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("expected zero, not error: %v", err)
	}

	if !balance.IsZero() {
		t.Errorf("expected zero balance, got %s", balance)
	}
}
