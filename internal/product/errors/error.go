// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"strings"
)

var ErrProductNotFound = errors.New("product not found")

// ErrStorage marks failures of the backing file: missing, unreadable, unwritable or corrupt.
var ErrStorage = errors.New("product storage failure")

// ValidationError carries every rule violation found in a payload.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
