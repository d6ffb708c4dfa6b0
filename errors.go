package revrec

import (
	"errors"
	"fmt"

	"github.com/xraph/revrec/fx"
	"github.com/xraph/revrec/store"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrInvalidInput = errors.New("revrec: invalid input")

	// Rate errors. ErrNoRate is raised by a provider only when it holds
	// zero quotes for the requested pair; the scheduler never substitutes
	// a default rate.
	ErrNoRate = fx.ErrNoRate

	// Sink errors
	ErrSinkClosed   = store.ErrClosed
	ErrSinkNotFound = store.ErrNotFound
)

// Zero-length periods and non-paid invoices are deliberately NOT errors:
// both yield empty results so one malformed line or ineligible invoice
// never aborts processing of its siblings.

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("revrec: validation failed for %s: %s", e.Field, e.Message)
}

// InvoiceError wraps a failure scoped to a single invoice during a bulk run.
type InvoiceError struct {
	InvoiceID string
	Err       error
}

func (e InvoiceError) Error() string {
	return fmt.Sprintf("revrec: invoice %s: %v", e.InvoiceID, e.Err)
}

func (e InvoiceError) Unwrap() error { return e.Err }

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "revrec: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("revrec: %d errors occurred", len(e.Errors))
}

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e *MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e *MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsNoRate returns true if the error stems from a missing currency pair.
func IsNoRate(err error) bool {
	return errors.Is(err, fx.ErrNoRate)
}

// IsRetryable returns true if the error is temporary and the operation
// can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, store.ErrClosed)
}
