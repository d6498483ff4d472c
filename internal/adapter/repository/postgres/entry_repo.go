package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bankbook/internal/domain"
	"github.com/iho/bankbook/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Ledger entries are
// append-only: this repository has no update or delete statements.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const createEntry = `
	INSERT INTO ledger_entries (id, account_id, transaction_id, entry_type, amount, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// Create appends a ledger entry inside the given database transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createEntry,
		entry.ID,
		entry.AccountID,
		entry.TransactionID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

const listEntriesByAccount = `
	SELECT id, account_id, transaction_id, entry_type, amount, created_at
	FROM ledger_entries
	WHERE account_id = $1
	ORDER BY created_at ASC, id ASC
	LIMIT $2 OFFSET $3
`

// ListByAccount retrieves an account's entries, oldest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, listEntriesByAccount, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

const getBalance = `
	SELECT COALESCE(SUM(CASE WHEN entry_type = 'credit' THEN amount ELSE -amount END), 0)::NUMERIC
	FROM ledger_entries
	WHERE account_id = $1
`

// GetBalance derives the account balance from committed entries. Accounts
// with no entries yield zero.
func (r *EntryRepository) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var balance pgtype.Numeric

	if err := r.pool.QueryRow(ctx, getBalance, accountID).Scan(&balance); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}

// GetBalanceForUpdate derives the balance inside the given transaction.
// With the account row already locked FOR UPDATE, the sum cannot be
// invalidated by a concurrent posting before this transaction commits.
func (r *EntryRepository) GetBalanceForUpdate(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var balance pgtype.Numeric

	if err := pgxTx.QueryRow(ctx, getBalance, accountID).Scan(&balance); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry     domain.Entry
		entryType string
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.TransactionID,
		&entryType,
		&amount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Type = domain.EntryType(entryType)
	entry.Amount = numericToDecimal(amount)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
