package billing

import (
	"errors"
	"fmt"
)

// ErrInvalidItem is matched by every ValidationError.
var ErrInvalidItem = errors.New("invalid line item")

// ValidationError reports which line item field was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidItem
}
