package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/fintally/account-api/internal/domain"
	"github.com/fintally/account-api/internal/store"
)

const (
	// maxAccountsPerUser is the per-user account cap. The create that would
	// be the eleventh account is rejected.
	maxAccountsPerUser = 10

	// initialAccountNumber seeds the global account number counter when the
	// store holds no accounts at all.
	initialAccountNumber = "1000000000"
)

// AccountInfo is the projection of an account returned to the request layer.
type AccountInfo struct {
	UserID         int64
	AccountNumber  string
	Balance        int64
	RegisteredAt   time.Time
	UnregisteredAt *time.Time
}

// AccountService provides account lifecycle operations: creation, listing,
// and unregistration (soft close).
type AccountService interface {
	// CreateAccount creates an account for the user with the given initial
	// balance and a freshly allocated account number.
	CreateAccount(ctx context.Context, userID int64, initialBalance int64) (*AccountInfo, error)

	// CloseAccount unregisters the user's account. The account must belong
	// to the user, still be in use, and hold a zero balance.
	CloseAccount(ctx context.Context, userID int64, accountNumber string) (*AccountInfo, error)

	// ListAccounts returns every account owned by the user, any status,
	// in insertion order.
	ListAccounts(ctx context.Context, userID int64) ([]*AccountInfo, error)

	// GetAccount retrieves an account by its internal record ID.
	// A strictly negative id is rejected as ErrInvalidRequest.
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
}

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	accountStore store.AccountStore
	userStore    store.UserStore
	db           *sql.DB
	logger       *slog.Logger
	runInTx      func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	now          func() time.Time // Injectable for testing
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accountStore store.AccountStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		accountStore: accountStore,
		userStore:    userStore,
		db:           db,
		logger:       logger.With("component", "account_service"),
		runInTx:      store.RunInTransaction,
		now:          time.Now,
	}
}

// Ensure AccountServiceImpl implements AccountService interface
var _ AccountService = (*AccountServiceImpl)(nil)

// CreateAccount creates a new account for the user.
// The whole read-validate-write sequence runs in a single transaction.
func (s *AccountServiceImpl) CreateAccount(
	ctx context.Context,
	userID int64,
	initialBalance int64,
) (*AccountInfo, error) {
	if userID < 0 || initialBalance < 0 {
		return nil, ErrInvalidRequest
	}

	var info *AccountInfo
	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUserStore := s.userStore.WithTx(tx)
		txAccountStore := s.accountStore.WithTx(tx)

		user, err := txUserStore.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		count, err := txAccountStore.CountByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if count >= maxAccountsPerUser {
			s.logger.Debug("account cap reached",
				"user_id", user.ID,
				"account_count", count)
			return ErrMaxAccountPerUser
		}

		accountNumber, err := s.nextAccountNumber(ctx, txAccountStore)
		if err != nil {
			return err
		}

		account, err := domain.NewAccount(user.ID, accountNumber, initialBalance, s.now().UTC())
		if err != nil {
			return err
		}

		if err := txAccountStore.Create(ctx, account); err != nil {
			return err
		}

		info = accountToInfo(account)
		return nil
	})

	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			s.logger.Error("failed to create account",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("account created",
		"user_id", userID,
		"account_number", info.AccountNumber)
	return info, nil
}

// nextAccountNumber allocates the next account number: the most recently
// created account's number plus one, or the seed value on an empty store.
// The counter is global, not per-user.
func (s *AccountServiceImpl) nextAccountNumber(
	ctx context.Context,
	accountStore store.AccountStore,
) (string, error) {
	latest, err := accountStore.GetMostRecentlyCreated(ctx)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return initialAccountNumber, nil
		}
		return "", err
	}

	n, err := strconv.ParseInt(latest.AccountNumber, 10, 64)
	if err != nil {
		s.logger.Error("latest account number is not numeric",
			"account_number", latest.AccountNumber,
			"error", err)
		return "", err
	}

	return strconv.FormatInt(n+1, 10), nil
}

// CloseAccount unregisters the user's account inside a single transaction.
// Validation order: ownership, then status, then balance.
func (s *AccountServiceImpl) CloseAccount(
	ctx context.Context,
	userID int64,
	accountNumber string,
) (*AccountInfo, error) {
	var info *AccountInfo
	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUserStore := s.userStore.WithTx(tx)
		txAccountStore := s.accountStore.WithTx(tx)

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

		if err := account.Unregister(s.now().UTC()); err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyUnregistered):
				return ErrAccountAlreadyUnregistered
			case errors.Is(err, domain.ErrBalanceNotEmpty):
				return ErrBalanceNotEmpty
			default:
				return err
			}
		}

		if err := txAccountStore.Update(ctx, account); err != nil {
			return err
		}

		info = accountToInfo(account)
		return nil
	})

	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			s.logger.Error("failed to close account",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("account unregistered",
		"user_id", userID,
		"account_number", info.AccountNumber)
	return info, nil
}

// ListAccounts returns projections of every account the user owns.
func (s *AccountServiceImpl) ListAccounts(ctx context.Context, userID int64) ([]*AccountInfo, error) {
	_, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	accounts, err := s.accountStore.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list accounts",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	infos := make([]*AccountInfo, 0, len(accounts))
	for _, account := range accounts {
		infos = append(infos, accountToInfo(account))
	}

	return infos, nil
}

// GetAccount retrieves an account by record ID. Negative IDs are rejected as
// an invalid-argument fault, never as a not-found.
func (s *AccountServiceImpl) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	if id < 0 {
		return nil, ErrInvalidRequest
	}

	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("failed to retrieve account",
			"error", err,
			"account_id", id)
		return nil, err
	}

	return account, nil
}

// accountToInfo projects a domain account into the response shape.
func accountToInfo(account *domain.Account) *AccountInfo {
	return &AccountInfo{
		UserID:         account.UserID,
		AccountNumber:  account.AccountNumber,
		Balance:        account.Balance,
		RegisteredAt:   account.RegisteredAt,
		UnregisteredAt: account.UnregisteredAt,
	}
}
