package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/fintally/account-api/internal/domain"
	"github.com/fintally/account-api/internal/store"
)

// cancelWindow is how long after a transaction a reversal is still allowed.
const cancelWindow = 365 * 24 * time.Hour

// TransactionResult is the projection of a ledger transaction returned to
// the request layer.
type TransactionResult struct {
	AccountNumber   string
	TransactionID   string
	Type            domain.TransactionType
	Result          domain.TransactionResult
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
}

// TransactionService provides balance mutation operations: debit ("use"),
// reversal ("cancel"), and persistence of failure records for both paths.
type TransactionService interface {
	// UseBalance debits amount from the user's account and records a
	// successful USE transaction.
	UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (*TransactionResult, error)

	// CancelBalance reverses an earlier debit in full and records a
	// successful CANCEL transaction.
	CancelBalance(ctx context.Context, transactionID string, accountNumber string, amount int64) (*TransactionResult, error)

	// SaveFailedUseTransaction records a failed debit attempt without
	// touching the account balance. Called when a downstream step fails
	// after validation succeeded.
	SaveFailedUseTransaction(ctx context.Context, accountNumber string, amount int64) error

	// SaveFailedCancelTransaction mirrors SaveFailedUseTransaction for the
	// cancel path.
	SaveFailedCancelTransaction(ctx context.Context, accountNumber string, amount int64) error
}

// TransactionServiceImpl implements the TransactionService interface.
type TransactionServiceImpl struct {
	transactionStore store.TransactionStore
	accountStore     store.AccountStore
	userStore        store.UserStore
	db               *sql.DB
	logger           *slog.Logger
	runInTx          func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	now              func() time.Time // Injectable for testing
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	transactionStore store.TransactionStore,
	accountStore store.AccountStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		transactionStore: transactionStore,
		accountStore:     accountStore,
		userStore:        userStore,
		db:               db,
		logger:           logger.With("component", "transaction_service"),
		runInTx:          store.RunInTransaction,
		now:              time.Now,
	}
}

// Ensure TransactionServiceImpl implements TransactionService interface
var _ TransactionService = (*TransactionServiceImpl)(nil)

// UseBalance debits the account inside a single transaction.
// Validation order: ownership, then account status, then amount vs balance.
// The recorded snapshot is the balance after the debit.
func (s *TransactionServiceImpl) UseBalance(
	ctx context.Context,
	userID int64,
	accountNumber string,
	amount int64,
) (*TransactionResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidRequest
	}

	var result *TransactionResult
	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUserStore := s.userStore.WithTx(tx)
		txAccountStore := s.accountStore.WithTx(tx)
		txTransactionStore := s.transactionStore.WithTx(tx)

		user, err := txUserStore.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		account, err := txAccountStore.GetByAccountNumber(ctx, accountNumber)
		if err != nil {
			if errors.Is(err, store.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if account.UserID != user.ID {
			return ErrUserAccountUnmatch
		}

		if err := account.UseBalance(amount); err != nil {
			switch {
			case errors.Is(err, domain.ErrAccountNotInUse):
				return ErrAccountNotInUse
			case errors.Is(err, domain.ErrBalanceExceeded):
				return ErrAmountExceedBalance
			default:
				return err
			}
		}

		if err := txAccountStore.Update(ctx, account); err != nil {
			return err
		}

		transaction, err := s.record(ctx, txTransactionStore,
			domain.TransactionTypeUse, domain.TransactionResultSuccess, account, amount)
		if err != nil {
			return err
		}

		result = transactionToResult(transaction, account.AccountNumber)
		return nil
	})

	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			s.logger.Error("failed to use balance",
				"error", err,
				"user_id", userID,
				"amount", amount)
		}
		return nil, err
	}

	s.logger.Info("balance used",
		"user_id", userID,
		"account_number", result.AccountNumber,
		"amount", amount,
		"transaction_id", result.TransactionID)
	return result, nil
}

// CancelBalance reverses an earlier debit inside a single transaction.
// Validation order: transaction/account match, then full-amount match, then
// age. The recorded snapshot is the balance after the credit.
func (s *TransactionServiceImpl) CancelBalance(
	ctx context.Context,
	transactionID string,
	accountNumber string,
	amount int64,
) (*TransactionResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidRequest
	}

	var result *TransactionResult
	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txAccountStore := s.accountStore.WithTx(tx)
		txTransactionStore := s.transactionStore.WithTx(tx)

		original, err := txTransactionStore.GetByTransactionID(ctx, transactionID)
		if err != nil {
			if errors.Is(err, store.ErrTransactionNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		account, err := txAccountStore.GetByAccountNumber(ctx, accountNumber)
		if err != nil {
			if errors.Is(err, store.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if original.AccountID != account.ID {
			return ErrTransactionAccountUnmatch
		}

		if original.Amount != amount {
			return ErrCancelMustFully
		}

		if original.TransactedAt.Before(s.now().Add(-cancelWindow)) {
			return ErrTooOldOrderToCancel
		}

		if err := account.CancelBalance(amount); err != nil {
			return err
		}

		if err := txAccountStore.Update(ctx, account); err != nil {
			return err
		}

		transaction, err := s.record(ctx, txTransactionStore,
			domain.TransactionTypeCancel, domain.TransactionResultSuccess, account, amount)
		if err != nil {
			return err
		}

		result = transactionToResult(transaction, account.AccountNumber)
		return nil
	})

	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			s.logger.Error("failed to cancel balance",
				"error", err,
				"transaction_id", transactionID,
				"amount", amount)
		}
		return nil, err
	}

	s.logger.Info("balance cancelled",
		"account_number", result.AccountNumber,
		"amount", amount,
		"original_transaction_id", transactionID,
		"transaction_id", result.TransactionID)
	return result, nil
}

// SaveFailedUseTransaction records a USE/FAIL transaction. The balance is not
// mutated; the snapshot is the balance at call time. No ownership check here:
// the caller already failed downstream and only the account is known.
func (s *TransactionServiceImpl) SaveFailedUseTransaction(
	ctx context.Context,
	accountNumber string,
	amount int64,
) error {
	return s.saveFailedTransaction(ctx, domain.TransactionTypeUse, accountNumber, amount)
}

// SaveFailedCancelTransaction records a CANCEL/FAIL transaction without
// mutating the balance.
func (s *TransactionServiceImpl) SaveFailedCancelTransaction(
	ctx context.Context,
	accountNumber string,
	amount int64,
) error {
	return s.saveFailedTransaction(ctx, domain.TransactionTypeCancel, accountNumber, amount)
}

func (s *TransactionServiceImpl) saveFailedTransaction(
	ctx context.Context,
	txType domain.TransactionType,
	accountNumber string,
	amount int64,
) error {
	if amount <= 0 {
		return ErrInvalidRequest
	}

	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txAccountStore := s.accountStore.WithTx(tx)
		txTransactionStore := s.transactionStore.WithTx(tx)

		account, err := txAccountStore.GetByAccountNumber(ctx, accountNumber)
		if err != nil {
			if errors.Is(err, store.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		_, err = s.record(ctx, txTransactionStore,
			txType, domain.TransactionResultFail, account, amount)
		return err
	})

	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			s.logger.Error("failed to record failed transaction",
				"error", err,
				"type", string(txType),
				"amount", amount)
		}
		return err
	}

	s.logger.Info("failure transaction recorded",
		"type", string(txType),
		"account_number", accountNumber,
		"amount", amount)
	return nil
}

// record writes one transaction row for the account. The snapshot is taken
// from the account's current balance, so success paths must mutate the
// balance before calling this and failure paths must not.
func (s *TransactionServiceImpl) record(
	ctx context.Context,
	transactionStore store.TransactionStore,
	txType domain.TransactionType,
	txResult domain.TransactionResult,
	account *domain.Account,
	amount int64,
) (*domain.Transaction, error) {
	transaction, err := domain.NewTransaction(txType, txResult, account, amount, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := transactionStore.Create(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// transactionToResult projects a domain transaction into the response shape.
func transactionToResult(transaction *domain.Transaction, accountNumber string) *TransactionResult {
	return &TransactionResult{
		AccountNumber:   accountNumber,
		TransactionID:   transaction.TransactionID,
		Type:            transaction.Type,
		Result:          transaction.Result,
		Amount:          transaction.Amount,
		BalanceSnapshot: transaction.BalanceSnapshot,
		TransactedAt:    transaction.TransactedAt,
	}
}
