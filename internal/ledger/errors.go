package ledger

import "errors"

// Every operation failure wraps one of these sentinels so callers can map
// them to a transport status. A failed call leaves the ledger untouched.
var (
	ErrValidation        = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid offer state")
	ErrInsufficientFunds = errors.New("insufficient funds (402)")
)
