package revrec

import (
	"context"

	"github.com/xraph/revrec/invoice"
)

// TaxAdjuster rewrites an invoice line before expansion, typically to
// strip tax from a gross amount so only net revenue is recognised.
// Implementations must be pure with respect to the line: the returned
// line replaces the input, the input is never mutated.
type TaxAdjuster interface {
	// Name returns a stable identifier for logging.
	Name() string

	// AdjustLine returns the line to expand in place of the given one.
	AdjustLine(ctx context.Context, line invoice.Line) (invoice.Line, error)
}

// noopTax passes every line through unchanged.
type noopTax struct{}

func (noopTax) Name() string { return "noop" }

func (noopTax) AdjustLine(_ context.Context, line invoice.Line) (invoice.Line, error) {
	return line, nil
}
