package domain

import (
	"errors"
	"fmt"
	"time"
)

// AccountStatus represents the lifecycle state of an account.
type AccountStatus string

const (
	// AccountStatusInUse is the status of an active account.
	AccountStatusInUse AccountStatus = "IN_USE"
	// AccountStatusUnregistered is the terminal status of a closed account.
	AccountStatusUnregistered AccountStatus = "UNREGISTERED"
)

// Account validation errors
var (
	ErrEmptyAccountNumber = errors.New("account number cannot be empty")
	ErrNegativeBalance    = errors.New("balance cannot be negative")
	ErrInvalidStatus      = errors.New("invalid account status")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
)

// Account is a ledger owned by exactly one user. Balance is a count of
// currency minor units and never goes negative. Status only ever moves
// IN_USE -> UNREGISTERED; accounts are never physically deleted.
type Account struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	AccountNumber  string        `json:"account_number"`
	Status         AccountStatus `json:"status"`
	Balance        int64         `json:"balance"`
	RegisteredAt   time.Time     `json:"registered_at"`
	UnregisteredAt *time.Time    `json:"unregistered_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewAccount creates an active account for the given user with the assigned
// account number and initial balance. Returns an error if validation fails.
func NewAccount(userID int64, accountNumber string, initialBalance int64, now time.Time) (*Account, error) {
	account := &Account{
		UserID:        userID,
		AccountNumber: accountNumber,
		Status:        AccountStatusInUse,
		Balance:       initialBalance,
		RegisteredAt:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.UserID < 0 {
		return ErrInvalidID
	}

	if a.AccountNumber == "" {
		return ErrEmptyAccountNumber
	}

	if a.Balance < 0 {
		return ErrNegativeBalance
	}

	if a.Status != AccountStatusInUse && a.Status != AccountStatusUnregistered {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}

	return nil
}

// UseBalance debits amount from the account. The account must be IN_USE and
// the amount must not exceed the current balance, so the balance invariant
// (never negative) holds after every successful call.
func (a *Account) UseBalance(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}

	if a.Status != AccountStatusInUse {
		return ErrAccountNotInUse
	}

	if amount > a.Balance {
		return ErrBalanceExceeded
	}

	a.Balance -= amount
	return nil
}

// CancelBalance credits amount back to the account, reversing an earlier
// debit.
func (a *Account) CancelBalance(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}

	a.Balance += amount
	return nil
}

// Unregister closes the account. Only an IN_USE account with a zero balance
// may be unregistered; the transition is terminal.
func (a *Account) Unregister(now time.Time) error {
	if a.Status == AccountStatusUnregistered {
		return ErrAlreadyUnregistered
	}

	if a.Balance != 0 {
		return ErrBalanceNotEmpty
	}

	a.Status = AccountStatusUnregistered
	a.UnregisteredAt = &now
	a.UpdatedAt = now
	return nil
}
