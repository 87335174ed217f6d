package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	// ErrInvalidAccount flags a malformed or empty account identifier, or an
	// invalid cross-account request such as from == to.
	ErrInvalidAccount = errors.New("invalid_account")
	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.New("account_not_found")
	// ErrInsufficientFunds indicates the operation would drive a balance negative.
	ErrInsufficientFunds = errors.New("insufficient_funds")
	// ErrInvalidAmount flags a malformed or non-positive movement amount.
	ErrInvalidAmount = errors.New("invalid_amount")
	// ErrConflict indicates a uniqueness violation (duplicate account id).
	ErrConflict = errors.New("conflict")
	// ErrNotFound is the generic miss for non-account entities (payments).
	ErrNotFound = errors.New("not_found")
)
