package usecase

import (
	"context"
	"time"

	"github.com/iho/bankbook/internal/domain"
)

// AccountUseCase is the account registry: it creates accounts and looks
// them up, enriching reads with the derived balance.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID     string
	AccountType string
	Currency    string
}

// CreateAccount creates a new account. Currency defaults to INR.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		AccountType: input.AccountType,
		Currency:    domain.NormalizeCurrency(input.Currency),
		CreatedAt:   time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID with its current balance. The
// balance is computed from committed ledger entries on every read; it is
// the only place the registry touches the ledger.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	balance, err := uc.entryRepo.GetBalance(ctx, id)
	if err != nil {
		return nil, err
	}

	account.Balance = balance

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination. Balances are not attached;
// callers needing a balance fetch the account individually.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}
