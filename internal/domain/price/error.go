package price

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("price not found")
	ErrDuplicateCode = errors.New("duplicate code")
	ErrFieldRequired = errors.New("field is required")
	ErrInvalidValue  = errors.New("invalid value")
)

// ValidationError reports which field failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
