package usecase

import (
	"context"
	"errors"

	"github.com/iho/bankbook/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when a ledger invariant is broken.
	ErrInconsistentLedger = errors.New("ledger is inconsistent")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies ledger invariants: no transaction is stuck in
// pending (atomic units flip status before commit) and every transfer's
// entries net to zero. The report is returned even when inconsistent so
// operators can see which invariant broke.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	report, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	if !report.Consistent() {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
