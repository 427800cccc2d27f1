package models

import (
	"errors"
	"fmt"
)

// Error kinds the handler layer maps to HTTP statuses. Validation failures
// become 4xx responses, data-access failures 5xx. No-data conditions inside
// the scoring formulas are not errors at all; every sub-score defines its
// own fallback value.
var (
	ErrValidation = errors.New("validation failed")
	ErrDataAccess = errors.New("data access failed")
	ErrNotFound   = errors.New("not found")
)

// Validationf builds a field-identifying validation error
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// DataAccess marks err as an infrastructure failure, keeping the chain
func DataAccess(err error) error {
	return fmt.Errorf("%w: %w", ErrDataAccess, err)
}
