package store

import (
	"context"
	"database/sql"

	"github.com/fintally/account-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Users are owned by the external identity system; this service only reads
// them, so the interface is lookup-only.
type UserStore interface {
	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
