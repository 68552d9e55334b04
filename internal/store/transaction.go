package store

import (
	"context"
	"database/sql"

	"github.com/fintally/account-api/internal/domain"
)

// TransactionStore defines the interface for ledger transaction persistence.
// Transaction rows are an append-only audit trail: there is no update or
// delete operation by design.
type TransactionStore interface {
	// Create appends a new transaction record and fills in its generated ID.
	// Returns validation errors from the domain Transaction if data is invalid.
	Create(ctx context.Context, transaction *domain.Transaction) error

	// GetByTransactionID retrieves a transaction by its opaque transaction ID.
	// Returns ErrTransactionNotFound if the transaction does not exist.
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// WithTx returns a new TransactionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TransactionStore
}
