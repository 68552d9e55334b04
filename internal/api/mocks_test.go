package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fintally/account-api/internal/domain"
	"github.com/fintally/account-api/internal/service"
)

// mockAccountService mocks the service.AccountService interface
type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(
	ctx context.Context,
	userID int64,
	initialBalance int64,
) (*service.AccountInfo, error) {
	args := m.Called(ctx, userID, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccountInfo), args.Error(1)
}

func (m *mockAccountService) CloseAccount(
	ctx context.Context,
	userID int64,
	accountNumber string,
) (*service.AccountInfo, error) {
	args := m.Called(ctx, userID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccountInfo), args.Error(1)
}

func (m *mockAccountService) ListAccounts(
	ctx context.Context,
	userID int64,
) ([]*service.AccountInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.AccountInfo), args.Error(1)
}

func (m *mockAccountService) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// mockTransactionService mocks the service.TransactionService interface
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) UseBalance(
	ctx context.Context,
	userID int64,
	accountNumber string,
	amount int64,
) (*service.TransactionResult, error) {
	args := m.Called(ctx, userID, accountNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionResult), args.Error(1)
}

func (m *mockTransactionService) CancelBalance(
	ctx context.Context,
	transactionID string,
	accountNumber string,
	amount int64,
) (*service.TransactionResult, error) {
	args := m.Called(ctx, transactionID, accountNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionResult), args.Error(1)
}

func (m *mockTransactionService) SaveFailedUseTransaction(
	ctx context.Context,
	accountNumber string,
	amount int64,
) error {
	args := m.Called(ctx, accountNumber, amount)
	return args.Error(0)
}

func (m *mockTransactionService) SaveFailedCancelTransaction(
	ctx context.Context,
	accountNumber string,
	amount int64,
) error {
	args := m.Called(ctx, accountNumber, amount)
	return args.Error(0)
}
