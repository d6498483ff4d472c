package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankbook/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const ledgerTotals = `
	SELECT
		COALESCE(SUM(amount) FILTER (WHERE entry_type = 'credit'), 0)::NUMERIC,
		COALESCE(SUM(amount) FILTER (WHERE entry_type = 'debit'), 0)::NUMERIC
	FROM ledger_entries
`

const pendingTransactions = `
	SELECT COUNT(*) FROM transactions WHERE status = 'pending'
`

const unbalancedTransfers = `
	SELECT COUNT(*) FROM (
		SELECT t.id
		FROM transactions t
		JOIN ledger_entries e ON e.transaction_id = t.id
		WHERE t.type = 'transfer'
		GROUP BY t.id
		HAVING SUM(CASE WHEN e.entry_type = 'credit' THEN e.amount ELSE -e.amount END) <> 0
	) unbalanced
`

// CheckConsistency gathers ledger-wide invariant counters.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	var report domain.ConsistencyReport

	var credits, debits pgtype.Numeric

	if err := r.pool.QueryRow(ctx, ledgerTotals).Scan(&credits, &debits); err != nil {
		return nil, err
	}

	report.TotalCredits = numericToDecimal(credits)
	report.TotalDebits = numericToDecimal(debits)

	if err := r.pool.QueryRow(ctx, pendingTransactions).Scan(&report.PendingTransactions); err != nil {
		return nil, err
	}

	if err := r.pool.QueryRow(ctx, unbalancedTransfers).Scan(&report.UnbalancedTransfers); err != nil {
		return nil, err
	}

	return &report, nil
}
