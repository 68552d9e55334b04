package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/fintally/account-api/internal/domain"
	"github.com/fintally/account-api/internal/platform/logger"
	"github.com/fintally/account-api/internal/store"
)

// PostgresTransactionStore implements the store.TransactionStore interface
// using a PostgreSQL database as the storage backend. Rows are append-only;
// there is deliberately no update or delete query in this file.
type PostgresTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTransactionStore creates a new PostgreSQL implementation of the TransactionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTransactionStore(db store.DBTX, logger *slog.Logger) *PostgresTransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

// Ensure PostgresTransactionStore implements store.TransactionStore interface
var _ store.TransactionStore = (*PostgresTransactionStore)(nil)

// Create implements store.TransactionStore.Create
// It appends a transaction record, handling domain validation, and fills in
// the generated record ID.
// Returns store.ErrInvalidEntity if the account ID doesn't exist (foreign key violation).
func (s *PostgresTransactionStore) Create(ctx context.Context, transaction *domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := transaction.Validate(); err != nil {
		log.Warn("transaction validation failed during create",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transaction.TransactionID))
		return err
	}

	query := `
		INSERT INTO transactions (transaction_id, account_id, type, result, amount, balance_snapshot, transacted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		transaction.TransactionID,
		transaction.AccountID,
		transaction.Type,
		transaction.Result,
		transaction.Amount,
		transaction.BalanceSnapshot,
		transaction.TransactedAt,
	).Scan(&transaction.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during transaction creation",
				slog.String("error", err.Error()),
				slog.Int64("account_id", transaction.AccountID))
			return store.ErrAccountNotFound
		}

		log.Error("failed to create transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transaction.TransactionID),
			slog.Int64("account_id", transaction.AccountID))
		return MapError(err)
	}

	log.Info("transaction recorded",
		slog.String("transaction_id", transaction.TransactionID),
		slog.Int64("account_id", transaction.AccountID),
		slog.String("type", string(transaction.Type)),
		slog.String("result", string(transaction.Result)),
		slog.Int64("amount", transaction.Amount))
	return nil
}

// GetByTransactionID implements store.TransactionStore.GetByTransactionID
// Returns store.ErrTransactionNotFound if the transaction does not exist.
func (s *PostgresTransactionStore) GetByTransactionID(
	ctx context.Context,
	transactionID string,
) (*domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, transaction_id, account_id, type, result, amount, balance_snapshot, transacted_at
		FROM transactions
		WHERE transaction_id = $1
	`

	var transaction domain.Transaction
	var txType, result string

	err := s.db.QueryRowContext(ctx, query, transactionID).Scan(
		&transaction.ID,
		&transaction.TransactionID,
		&transaction.AccountID,
		&txType,
		&result,
		&transaction.Amount,
		&transaction.BalanceSnapshot,
		&transaction.TransactedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("transaction not found",
				slog.String("transaction_id", transactionID))
			return nil, store.ErrTransactionNotFound
		}
		log.Error("failed to get transaction by ID",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transactionID))
		return nil, MapError(err)
	}

	transaction.Type = domain.TransactionType(txType)
	transaction.Result = domain.TransactionResult(result)

	return &transaction, nil
}

// WithTx implements store.TransactionStore.WithTx
// It returns a new TransactionStore instance bound to the given transaction.
func (s *PostgresTransactionStore) WithTx(tx *sql.Tx) store.TransactionStore {
	return &PostgresTransactionStore{
		db:     tx,
		logger: s.logger,
	}
}
