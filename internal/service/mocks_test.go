package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fintally/account-api/internal/domain"
	"github.com/fintally/account-api/internal/store"
)

// mockUserStore mocks the store.UserStore interface
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// WithTx returns the mock itself so expectations set on it apply inside
// transactions too.
func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// mockAccountStore mocks the store.AccountStore interface
type mockAccountStore struct {
	mock.Mock
}

func (m *mockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountStore) GetByAccountNumber(
	ctx context.Context,
	accountNumber string,
) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountStore) GetMostRecentlyCreated(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountStore) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountStore) GetAllByUserID(
	ctx context.Context,
	userID int64,
) ([]*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *mockAccountStore) Update(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return m
}

// mockTransactionStore mocks the store.TransactionStore interface
type mockTransactionStore struct {
	mock.Mock
}

func (m *mockTransactionStore) Create(ctx context.Context, transaction *domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *mockTransactionStore) GetByTransactionID(
	ctx context.Context,
	transactionID string,
) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *mockTransactionStore) WithTx(tx *sql.Tx) store.TransactionStore {
	return m
}

// passthroughTx replaces store.RunInTransaction in tests: it invokes the
// function directly with a nil transaction so no real database is needed.
// The mock stores' WithTx methods tolerate the nil by returning themselves.
func passthroughTx(ctx context.Context, db *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// testTime is the fixed clock used by service tests.
var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestAccountService builds an AccountService wired to the given mocks
// with a passthrough transaction runner and a fixed clock.
func newTestAccountService(accounts *mockAccountStore, users *mockUserStore) *AccountServiceImpl {
	svc := NewAccountService(accounts, users, nil, slog.Default())
	svc.runInTx = passthroughTx
	svc.now = func() time.Time { return testTime }
	return svc
}

// newTestTransactionService builds a TransactionService wired to the given
// mocks with a passthrough transaction runner and a fixed clock.
func newTestTransactionService(
	transactions *mockTransactionStore,
	accounts *mockAccountStore,
	users *mockUserStore,
) *TransactionServiceImpl {
	svc := NewTransactionService(transactions, accounts, users, nil, slog.Default())
	svc.runInTx = passthroughTx
	svc.now = func() time.Time { return testTime }
	return svc
}
