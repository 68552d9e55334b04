package api

import "time"

// Common request/response structures

// CreateAccountRequest defines the payload for the account creation endpoint.
type CreateAccountRequest struct {
	UserID         int64 `json:"user_id"         validate:"required,gt=0"`
	InitialBalance int64 `json:"initial_balance" validate:"gte=0"`
}

// CreateAccountResponse defines the successful response for account creation.
type CreateAccountResponse struct {
	UserID        int64     `json:"user_id"`
	AccountNumber string    `json:"account_number"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// DeleteAccountRequest defines the payload for the account unregistration endpoint.
type DeleteAccountRequest struct {
	UserID        int64  `json:"user_id"        validate:"required,gt=0"`
	AccountNumber string `json:"account_number" validate:"required,min=10"`
}

// DeleteAccountResponse defines the successful response for account unregistration.
type DeleteAccountResponse struct {
	UserID         int64      `json:"user_id"`
	AccountNumber  string     `json:"account_number"`
	UnregisteredAt *time.Time `json:"unregistered_at"`
}

// AccountInfoResponse is one element of the account listing response.
type AccountInfoResponse struct {
	AccountNumber string `json:"account_number"`
	Balance       int64  `json:"balance"`
}

// UseBalanceRequest defines the payload for the balance debit endpoint.
type UseBalanceRequest struct {
	UserID        int64  `json:"user_id"        validate:"required,gt=0"`
	AccountNumber string `json:"account_number" validate:"required,min=10"`
	Amount        int64  `json:"amount"         validate:"required,gt=0,lte=1000000000"`
}

// CancelBalanceRequest defines the payload for the balance reversal endpoint.
type CancelBalanceRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,min=10"`
	Amount        int64  `json:"amount"         validate:"required,gt=0,lte=1000000000"`
}

// TransactionResponse defines the successful response for both the debit and
// the reversal endpoints.
type TransactionResponse struct {
	AccountNumber     string    `json:"account_number"`
	TransactionResult string    `json:"transaction_result"`
	TransactionID     string    `json:"transaction_id"`
	Amount            int64     `json:"amount"`
	TransactedAt      time.Time `json:"transacted_at"`
}
