package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes debits from reversals.
type TransactionType string

const (
	// TransactionTypeUse is a balance debit.
	TransactionTypeUse TransactionType = "USE"
	// TransactionTypeCancel is a reversal of an earlier debit.
	TransactionTypeCancel TransactionType = "CANCEL"
)

// TransactionResult records whether the attempt succeeded.
type TransactionResult string

const (
	// TransactionResultSuccess marks a committed balance change.
	TransactionResultSuccess TransactionResult = "S"
	// TransactionResultFail marks an attempt that did not change the balance.
	TransactionResultFail TransactionResult = "F"
)

// Transaction validation errors
var (
	ErrEmptyTransactionID     = errors.New("transaction ID cannot be empty")
	ErrInvalidTransactionKind = errors.New("invalid transaction type or result")
)

// Transaction is an immutable audit record of one ledger event, success or
// failure. Once written it is never updated or deleted.
type Transaction struct {
	ID              int64             `json:"id"`
	TransactionID   string            `json:"transaction_id"`
	AccountID       int64             `json:"account_id"`
	Type            TransactionType   `json:"type"`
	Result          TransactionResult `json:"result"`
	Amount          int64             `json:"amount"`
	BalanceSnapshot int64             `json:"balance_snapshot"`
	TransactedAt    time.Time         `json:"transacted_at"`
}

// NewTransaction creates a transaction record for the given account with a
// freshly generated transaction ID. The snapshot is the account balance at
// the moment of recording: after the mutation on success paths, untouched on
// failure paths.
func NewTransaction(
	txType TransactionType,
	result TransactionResult,
	account *Account,
	amount int64,
	now time.Time,
) (*Transaction, error) {
	tx := &Transaction{
		TransactionID:   NewTransactionID(),
		AccountID:       account.ID,
		Type:            txType,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    now,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// NewTransactionID generates a globally unique opaque transaction
// identifier: a v4 UUID with the dashes stripped.
func NewTransactionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Validate checks if the Transaction has valid data.
func (t *Transaction) Validate() error {
	if t.TransactionID == "" {
		return ErrEmptyTransactionID
	}

	if t.Type != TransactionTypeUse && t.Type != TransactionTypeCancel {
		return ErrInvalidTransactionKind
	}

	if t.Result != TransactionResultSuccess && t.Result != TransactionResultFail {
		return ErrInvalidTransactionKind
	}

	if t.Amount <= 0 {
		return ErrNonPositiveAmount
	}

	return nil
}
