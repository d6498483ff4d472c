package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankbook/internal/domain"
	"github.com/iho/bankbook/internal/infrastructure/metrics"
)

// PostingUseCase is the posting engine: it records a financial movement as a
// transaction record plus its ledger entries inside one atomic unit of work.
// A reader never observes a transaction without its entries or entries
// without a transaction.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     m,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
	Description   string
}

// leg is one entry to append within a posting.
type leg struct {
	accountID string
	entryType domain.EntryType
}

// Deposit credits amount to an account.
func (uc *PostingUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	if input.AccountID == "" {
		return nil, domain.ErrAccountRequired
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	template := &domain.Transaction{
		Type:                 domain.TransactionTypeDeposit,
		Amount:               input.Amount,
		Currency:             domain.NormalizeCurrency(input.Currency),
		DestinationAccountID: &input.AccountID,
		Description:          descriptionOrDefault(input.Description, "Deposit"),
	}

	legs := []leg{{accountID: input.AccountID, entryType: domain.EntryTypeCredit}}

	return uc.post(ctx, template, legs, "")
}

// Withdraw debits amount from an account. The balance check runs inside the
// atomic unit, after the account row is locked, so concurrent withdrawals
// cannot overdraw.
func (uc *PostingUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	if input.AccountID == "" {
		return nil, domain.ErrAccountRequired
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	template := &domain.Transaction{
		Type:            domain.TransactionTypeWithdrawal,
		Amount:          input.Amount,
		Currency:        domain.NormalizeCurrency(input.Currency),
		SourceAccountID: &input.AccountID,
		Description:     descriptionOrDefault(input.Description, "Withdrawal"),
	}

	legs := []leg{{accountID: input.AccountID, entryType: domain.EntryTypeDebit}}

	return uc.post(ctx, template, legs, input.AccountID)
}

// Transfer moves amount between two distinct accounts: one debit entry on
// the source and one credit entry on the destination, sharing a transaction.
func (uc *PostingUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if input.FromAccountID == "" || input.ToAccountID == "" {
		return nil, domain.ErrAccountRequired
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	template := &domain.Transaction{
		Type:                 domain.TransactionTypeTransfer,
		Amount:               input.Amount,
		Currency:             domain.NormalizeCurrency(input.Currency),
		SourceAccountID:      &input.FromAccountID,
		DestinationAccountID: &input.ToAccountID,
		Description:          descriptionOrDefault(input.Description, "Transfer"),
	}

	legs := []leg{
		{accountID: input.FromAccountID, entryType: domain.EntryTypeDebit},
		{accountID: input.ToAccountID, entryType: domain.EntryTypeCredit},
	}

	return uc.post(ctx, template, legs, input.FromAccountID)
}

// post runs one posting through the retrier. Only transient storage
// conflicts (deadlock, serialization failure) are retried; each attempt
// re-runs the whole atomic unit with fresh IDs.
func (uc *PostingUseCase) post(ctx context.Context, template *domain.Transaction, legs []leg, debitAccountID string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultPostingTimeout)
	defer cancel()

	start := time.Now()

	var posted *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		txn, err := uc.postOnce(ctx, template, legs, debitAccountID)
		if err != nil {
			return err
		}

		posted = txn

		return nil
	})
	if err != nil {
		uc.recordRejection(template.Type, err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PostingsCreated.WithLabelValues(string(template.Type)).Inc()
		uc.metrics.PostingDuration.Observe(time.Since(start).Seconds())
	}

	return posted, nil
}

// postOnce executes a single atomic unit of work: lock accounts, check the
// balance for the debited account, insert the pending transaction record and
// its entries, flip the status to completed, commit. Every early return
// rolls back via the deferred Rollback.
func (uc *PostingUseCase) postOnce(ctx context.Context, template *domain.Transaction, legs []leg, debitAccountID string) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, errors.Join(domain.ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	// Lock accounts in sorted order (DEADLOCK PREVENTION)
	ids := uniqueSortedAccountIDs(legs)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	if debitAccountID != "" {
		balance, err := uc.entryRepo.GetBalanceForUpdate(ctx, tx, debitAccountID)
		if err != nil {
			return nil, err
		}

		if balance.LessThan(template.Amount) {
			return nil, domain.ErrInsufficientBalance
		}
	}

	now := time.Now().UTC()

	txn := *template
	txn.ID = uc.idGen.Generate()
	txn.Status = domain.TransactionStatusPending
	txn.CreatedAt = now

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, &txn); err != nil {
		return nil, err
	}

	for _, l := range legs {
		entry := &domain.Entry{
			ID:            uc.idGen.Generate(),
			AccountID:     l.accountID,
			TransactionID: txn.ID,
			Type:          l.entryType,
			Amount:        txn.Amount,
			CreatedAt:     now,
		}

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := uc.txnRepo.UpdateStatus(ctx, tx, txn.ID, domain.TransactionStatusCompleted); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Join(domain.ErrStorage, err)
	}

	txn.Status = domain.TransactionStatusCompleted

	return &txn, nil
}

func (uc *PostingUseCase) recordRejection(txnType domain.TransactionType, err error) {
	if uc.metrics == nil {
		return
	}

	reason := "storage"

	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		reason = "insufficient_balance"
	case errors.Is(err, domain.ErrAccountNotFound):
		reason = "account_not_found"
	}

	uc.metrics.PostingsRejected.WithLabelValues(string(txnType), reason).Inc()
}

func uniqueSortedAccountIDs(legs []leg) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, l := range legs {
		if !seen[l.accountID] {
			seen[l.accountID] = true
			ids = append(ids, l.accountID)
		}
	}

	sort.Strings(ids)

	return ids
}

func descriptionOrDefault(description, fallback string) string {
	if description == "" {
		return fallback
	}

	return description
}
