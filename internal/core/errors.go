package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers classify failures with errors.Is against
// these; everything more specific wraps one of them.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateBudget  = errors.New("budget already exists for category and month")
	ErrConflict         = errors.New("conflicting concurrent update")
	ErrStoreUnavailable = errors.New("storage unavailable")
)

var (
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	ErrInvalidType        = fmt.Errorf("%w: type must be income or expense", ErrValidation)
	ErrInvalidKind        = fmt.Errorf("%w: kind must be income or expense", ErrValidation)
	ErrInvalidAccountType = fmt.Errorf("%w: unknown account type", ErrValidation)
	ErrInvalidCurrency    = fmt.Errorf("%w: unknown currency code", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrEmptyName          = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTaken          = fmt.Errorf("%w: name already in use", ErrValidation)
)
