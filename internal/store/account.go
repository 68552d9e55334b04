package store

import (
	"context"
	"database/sql"

	"github.com/fintally/account-api/internal/domain"
)

// AccountStore defines the interface for account data persistence.
type AccountStore interface {
	// Create saves a new account to the store and fills in its generated ID.
	// Returns ErrAccountNumberExists if the account number is already taken.
	// Returns validation errors from the domain Account if data is invalid.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its internal record ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetByAccountNumber retrieves an account by its system-assigned number.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// GetMostRecentlyCreated retrieves the account with the highest record ID,
	// i.e. the latest insertion. Used by the account number allocator.
	// Returns ErrAccountNotFound when the store holds no accounts at all.
	GetMostRecentlyCreated(ctx context.Context) (*domain.Account, error)

	// CountByUserID returns the number of accounts ever created for the user,
	// regardless of status.
	CountByUserID(ctx context.Context, userID int64) (int64, error)

	// GetAllByUserID retrieves every account owned by the user in insertion
	// order, with no status filtering.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Account, error)

	// Update persists changes to an existing account (balance, status,
	// unregistered timestamp). Returns ErrAccountNotFound if the account
	// does not exist.
	Update(ctx context.Context, account *domain.Account) error

	// WithTx returns a new AccountStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AccountStore
}
