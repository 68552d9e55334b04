// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is malformed or negative.
	ErrInvalidID = errors.New("invalid ID")

	// ErrBalanceExceeded is returned when a debit would drive an account
	// balance below zero.
	ErrBalanceExceeded = errors.New("amount exceeds account balance")

	// ErrAccountNotInUse is returned when a balance mutation targets an
	// account that is not in IN_USE status.
	ErrAccountNotInUse = errors.New("account is not in use")

	// ErrBalanceNotEmpty is returned when an account with remaining funds
	// is asked to unregister.
	ErrBalanceNotEmpty = errors.New("account balance is not empty")

	// ErrAlreadyUnregistered is returned when an unregistered account is
	// asked to unregister again.
	ErrAlreadyUnregistered = errors.New("account already unregistered")
)
