package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	adaptershttp "github.com/iho/bankbook/internal/adapter/http"
	"github.com/iho/bankbook/internal/adapter/http/dto"
	"github.com/iho/bankbook/internal/adapter/http/handler"
	"github.com/iho/bankbook/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/bankbook/internal/adapter/repository/redis"
	infraredis "github.com/iho/bankbook/internal/infrastructure/redis"
	"github.com/iho/bankbook/internal/usecase"
	"github.com/iho/bankbook/tests/testutil"
)

func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	accountUC := usecase.NewAccountUseCase(accountRepo, entryRepo, idGen)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, txnRepo, entryRepo, idGen, retrier, nil)
	entryUC := usecase.NewEntryUseCase(entryRepo)
	txnUC := usecase.NewTransactionUseCase(txnRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		PostingHandler:     handler.NewPostingHandler(postingUC),
		EntryHandler:       handler.NewEntryHandler(entryUC),
		TransactionHandler: handler.NewTransactionHandler(txnUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
	})
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func getJSON(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func accountBalance(t *testing.T, router http.Handler, accountID string) decimal.Decimal {
	t.Helper()

	rec := getJSON(t, router, "/api/v1/accounts/"+accountID)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to get account %s: %d %s", accountID, rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode account response: %v", err)
	}

	return resp.Balance
}

func TestPostingLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	account := testDB.CreateTestAccount(ctx, "owner-1", "savings", "INR")
	other := testDB.CreateTestAccount(ctx, "owner-2", "savings", "INR")

	t.Run("deposit credits the account", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/deposits", dto.DepositRequest{
			AccountID: account.ID,
			Amount:    decimal.NewFromInt(100),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var txn dto.TransactionResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &txn); err != nil {
			t.Fatalf("failed to decode transaction: %v", err)
		}
		if txn.Status != "completed" || txn.Type != "deposit" {
			t.Fatalf("unexpected transaction: %+v", txn)
		}
		if txn.Currency != "INR" {
			t.Fatalf("expected default currency INR, got %s", txn.Currency)
		}

		if got := accountBalance(t, router, account.ID); !got.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected balance 100, got %s", got)
		}
	})

	t.Run("withdrawal debits the account", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/withdrawals", dto.WithdrawRequest{
			AccountID: account.ID,
			Amount:    decimal.NewFromInt(40),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		if got := accountBalance(t, router, account.ID); !got.Equal(decimal.NewFromInt(60)) {
			t.Fatalf("expected balance 60, got %s", got)
		}
	})

	t.Run("withdrawal beyond balance is rejected", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/withdrawals", dto.WithdrawRequest{
			AccountID: account.ID,
			Amount:    decimal.NewFromInt(100),
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}

		if got := accountBalance(t, router, account.ID); !got.Equal(decimal.NewFromInt(60)) {
			t.Fatalf("expected balance unchanged at 60, got %s", got)
		}
	})

	t.Run("transfer moves funds between accounts", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/transfers", dto.TransferRequest{
			FromAccountID: account.ID,
			ToAccountID:   other.ID,
			Amount:        decimal.NewFromInt(30),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		if got := accountBalance(t, router, account.ID); !got.Equal(decimal.NewFromInt(30)) {
			t.Fatalf("expected source balance 30, got %s", got)
		}
		if got := accountBalance(t, router, other.ID); !got.Equal(decimal.NewFromInt(30)) {
			t.Fatalf("expected destination balance 30, got %s", got)
		}
	})

	t.Run("transfer to the same account is rejected", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/transfers", dto.TransferRequest{
			FromAccountID: account.ID,
			ToAccountID:   account.ID,
			Amount:        decimal.NewFromInt(10),
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("zero amount deposit is rejected", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/deposits", dto.DepositRequest{
			AccountID: account.ID,
			Amount:    decimal.Zero,
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown account yields 404", func(t *testing.T) {
		rec := getJSON(t, router, "/api/v1/accounts/999")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("entries record both transfer legs", func(t *testing.T) {
		rec := getJSON(t, router, "/api/v1/accounts/"+other.ID+"/entries")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var entries []dto.EntryResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("failed to decode entries: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry on destination, got %d", len(entries))
		}
		if entries[0].Type != "credit" || !entries[0].Amount.Equal(decimal.NewFromInt(30)) {
			t.Fatalf("unexpected entry: %+v", entries[0])
		}
	})

	t.Run("ledger stays consistent", func(t *testing.T) {
		rec := getJSON(t, router, "/api/v1/ledger/consistency")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp dto.ConsistencyResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode consistency response: %v", err)
		}
		if !resp.Consistent {
			t.Fatalf("expected consistent ledger, got %+v", resp)
		}
		if resp.PendingTransactions != 0 {
			t.Fatalf("expected no pending transactions, got %d", resp.PendingTransactions)
		}
	})
}

func TestAccountCreationAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	t.Run("creates account with default currency", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/accounts", dto.CreateAccountRequest{
			OwnerID:     "owner-1",
			AccountType: "savings",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp dto.AccountResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode account: %v", err)
		}
		if resp.Currency != "INR" {
			t.Fatalf("expected INR default, got %s", resp.Currency)
		}
		if !resp.Balance.IsZero() {
			t.Fatalf("expected zero opening balance, got %s", resp.Balance)
		}
	})

	t.Run("rejects account without owner", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/accounts", dto.CreateAccountRequest{
			AccountType: "savings",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
