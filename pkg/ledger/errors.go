package ledger

import (
	"errors"
	"fmt"
)

// Business-rule failures surfaced by Post. Handlers match these with
// errors.Is and translate them into stable response codes.
var (
	ErrAccountNotOwned   = errors.New("account does not exist or is not owned by the user")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ValidationError reports a missing or malformed posting field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a storage fault that aborted the atomic unit. The
// whole unit has been rolled back by the time it is returned.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "persistence failure: " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }
