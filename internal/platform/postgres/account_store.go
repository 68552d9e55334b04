package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/fintally/account-api/internal/domain"
	"github.com/fintally/account-api/internal/platform/logger"
	"github.com/fintally/account-api/internal/store"
)

// accountColumns is the column list shared by every account SELECT.
const accountColumns = `id, user_id, account_number, status, balance, registered_at, unregistered_at, created_at, updated_at`

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the AccountStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// Create implements store.AccountStore.Create
// It saves a new account to the database, handling domain validation, and
// fills in the generated record ID.
// Returns store.ErrAccountNumberExists if the account number is already taken.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", account.UserID))
		return err
	}

	query := `
		INSERT INTO accounts (user_id, account_number, status, balance, registered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		account.UserID,
		account.AccountNumber,
		account.Status,
		account.Balance,
		account.RegisteredAt,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("account number collision during create",
				slog.String("account_number", account.AccountNumber))
			return store.ErrAccountNumberExists
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during account creation",
				slog.String("error", err.Error()),
				slog.Int64("user_id", account.UserID))
			return store.ErrUserNotFound
		}

		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.Int64("user_id", account.UserID),
			slog.String("account_number", account.AccountNumber))
		return MapError(err)
	}

	log.Info("account created successfully",
		slog.Int64("account_id", account.ID),
		slog.Int64("user_id", account.UserID),
		slog.String("account_number", account.AccountNumber))
	return nil
}

// GetByID implements store.AccountStore.GetByID
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByAccountNumber implements store.AccountStore.GetByAccountNumber
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) GetByAccountNumber(
	ctx context.Context,
	accountNumber string,
) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return s.getOne(ctx, query, accountNumber)
}

// GetMostRecentlyCreated implements store.AccountStore.GetMostRecentlyCreated
// It returns the latest inserted account (highest record ID), which the
// account number allocator treats as the current counter position.
// Returns store.ErrAccountNotFound when no accounts exist at all.
func (s *PostgresAccountStore) GetMostRecentlyCreated(ctx context.Context) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id DESC LIMIT 1`
	return s.getOne(ctx, query)
}

// getOne runs a single-row account query and scans the result.
func (s *PostgresAccountStore) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var account domain.Account
	var status string
	var unregisteredAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&account.ID,
		&account.UserID,
		&account.AccountNumber,
		&status,
		&account.Balance,
		&account.RegisteredAt,
		&unregisteredAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	account.Status = domain.AccountStatus(status)
	if unregisteredAt.Valid {
		t := unregisteredAt.Time
		account.UnregisteredAt = &t
	}

	return &account, nil
}

// CountByUserID implements store.AccountStore.CountByUserID
// It counts every account ever created for the user regardless of status.
func (s *PostgresAccountStore) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM accounts WHERE user_id = $1`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		log.Error("failed to count accounts for user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	return count, nil
}

// GetAllByUserID implements store.AccountStore.GetAllByUserID
// It retrieves the user's accounts in insertion order with no status filter.
// Returns an empty slice when the user owns no accounts.
func (s *PostgresAccountStore) GetAllByUserID(
	ctx context.Context,
	userID int64,
) ([]*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query accounts for user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		var status string
		var unregisteredAt sql.NullTime

		err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.AccountNumber,
			&status,
			&account.Balance,
			&account.RegisteredAt,
			&unregisteredAt,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan account row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		account.Status = domain.AccountStatus(status)
		if unregisteredAt.Valid {
			t := unregisteredAt.Time
			account.UnregisteredAt = &t
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if accounts == nil {
		accounts = []*domain.Account{}
	}

	return accounts, nil
}

// Update implements store.AccountStore.Update
// It persists balance, status and unregistered_at changes.
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) Update(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("account_id", account.ID))
		return err
	}

	account.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE accounts
		SET status = $1, balance = $2, unregistered_at = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		account.Status,
		account.Balance,
		account.UnregisteredAt,
		account.UpdatedAt,
		account.ID,
	)

	if err != nil {
		log.Error("failed to update account",
			slog.String("error", err.Error()),
			slog.Int64("account_id", account.ID))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("account_id", account.ID))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("account not found for update",
			slog.Int64("account_id", account.ID))
		return store.ErrAccountNotFound
	}

	log.Debug("account updated successfully",
		slog.Int64("account_id", account.ID),
		slog.Int64("balance", account.Balance),
		slog.String("status", string(account.Status)))
	return nil
}

// WithTx implements store.AccountStore.WithTx
// It returns a new AccountStore instance bound to the given transaction.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{
		db:     tx,
		logger: s.logger,
	}
}
