package usecase

import (
	"context"

	"github.com/iho/bankbook/internal/domain"
)

// TransactionUseCase handles transaction record queries.
type TransactionUseCase struct {
	txnRepo TransactionRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txnRepo TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{
		txnRepo: txnRepo,
	}
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists transactions touching an account, newest first.
func (uc *TransactionUseCase) ListByAccount(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.AccountID == "" {
		return nil, domain.ErrAccountRequired
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
