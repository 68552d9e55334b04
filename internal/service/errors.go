package service

// Error is a business-rule rejection with a stable machine-readable code and
// a human-readable message. Errors in this closed set are terminal outcomes
// for the invocation: they abort the surrounding unit of work and propagate
// unchanged to the request layer for translation into a response.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// The closed set of business errors this service can raise. Handlers and
// callers compare with errors.Is against these sentinel values.
var (
	// ErrUserNotFound is raised when the referenced user does not exist.
	ErrUserNotFound = &Error{Code: "USER_NOT_FOUND", Message: "user not found"}

	// ErrAccountNotFound is raised when the referenced account does not exist.
	ErrAccountNotFound = &Error{Code: "ACCOUNT_NOT_FOUND", Message: "account not found"}

	// ErrTransactionNotFound is raised when the referenced transaction does not exist.
	ErrTransactionNotFound = &Error{Code: "TRANSACTION_NOT_FOUND", Message: "transaction not found"}

	// ErrMaxAccountPerUser is raised when a create would push a user past
	// the per-user account cap.
	ErrMaxAccountPerUser = &Error{
		Code:    "MAX_ACCOUNT_PER_USER_10",
		Message: "user already has the maximum number of accounts",
	}

	// ErrUserAccountUnmatch is raised when the account is not owned by the
	// requesting user.
	ErrUserAccountUnmatch = &Error{
		Code:    "USER_ACCOUNT_UN_MATCH",
		Message: "user does not own this account",
	}

	// ErrAccountAlreadyUnregistered is raised when closing an account that
	// is already unregistered.
	ErrAccountAlreadyUnregistered = &Error{
		Code:    "ACCOUNT_ALREADY_UNREGISTERED",
		Message: "account is already unregistered",
	}

	// ErrBalanceNotEmpty is raised when closing an account that still holds funds.
	ErrBalanceNotEmpty = &Error{
		Code:    "BALANCE_NOT_EMPTY",
		Message: "account balance is not empty",
	}

	// ErrAccountNotInUse is raised when a balance mutation targets an
	// account that is not in IN_USE status.
	ErrAccountNotInUse = &Error{
		Code:    "ACCOUNT_NOT_IN_USE",
		Message: "account is not in use",
	}

	// ErrAmountExceedBalance is raised when a debit exceeds the current balance.
	ErrAmountExceedBalance = &Error{
		Code:    "AMOUNT_EXCEED_BALANCE",
		Message: "amount exceeds account balance",
	}

	// ErrTransactionAccountUnmatch is raised when a cancel references a
	// transaction that belongs to a different account.
	ErrTransactionAccountUnmatch = &Error{
		Code:    "TRANSACTION_ACCOUNT_UN_MATCH",
		Message: "transaction does not belong to this account",
	}

	// ErrCancelMustFully is raised when a cancel amount differs from the
	// original transaction amount; partial reversal is not supported.
	ErrCancelMustFully = &Error{
		Code:    "CANCEL_MUST_FULLY",
		Message: "cancel amount must equal the original transaction amount",
	}

	// ErrTooOldOrderToCancel is raised when the original transaction is
	// older than the cancellation window.
	ErrTooOldOrderToCancel = &Error{
		Code:    "TOO_OLD_ORDER_TO_CANCEL",
		Message: "transaction is too old to cancel",
	}

	// ErrInvalidRequest is raised for malformed input, e.g. a strictly
	// negative identifier. Deliberately distinct from the not-found errors.
	ErrInvalidRequest = &Error{
		Code:    "INVALID_REQUEST",
		Message: "invalid request",
	}
)
