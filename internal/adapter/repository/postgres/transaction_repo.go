package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankbook/internal/domain"
	"github.com/iho/bankbook/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const createTransaction = `
	INSERT INTO transactions
		(id, type, amount, currency, status, source_account_id, destination_account_id, description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Create inserts a transaction record inside the given database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createTransaction,
		txn.ID,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		txn.Currency,
		string(txn.Status),
		txn.SourceAccountID,
		txn.DestinationAccountID,
		txn.Description,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

const updateTransactionStatus = `
	UPDATE transactions SET status = $2 WHERE id = $1
`

// UpdateStatus transitions a transaction's status inside the given database
// transaction. The flip to completed is the only status write the engine
// performs; it commits together with the transaction's entries.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updateTransactionStatus, id, string(status))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

const getTransactionByID = `
	SELECT id, type, amount, currency, status, source_account_id, destination_account_id, description, created_at
	FROM transactions
	WHERE id = $1
`

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	txn, err := scanTransaction(r.pool.QueryRow(ctx, getTransactionByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

const listTransactionsByAccount = `
	SELECT id, type, amount, currency, status, source_account_id, destination_account_id, description, created_at
	FROM transactions
	WHERE source_account_id = $1 OR destination_account_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3
`

// ListByAccount lists transactions touching an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, listTransactionsByAccount, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		txnType   string
		status    string
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txnType,
		&amount,
		&txn.Currency,
		&status,
		&txn.SourceAccountID,
		&txn.DestinationAccountID,
		&txn.Description,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Status = domain.TransactionStatus(status)
	txn.Amount = numericToDecimal(amount)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
