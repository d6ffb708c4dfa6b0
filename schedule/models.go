// Package schedule holds the revenue-recognition schedule produced by the
// engine: per-day entries plus sorting and summary aggregation.
package schedule

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/xraph/revrec/fx"
	"github.com/xraph/revrec/id"
	"github.com/xraph/revrec/types"
)

// EntryStatus classifies an entry's day against the run's reference date.
type EntryStatus string

const (
	// StatusRecognised marks revenue attributable to a day on or before
	// the reference date.
	StatusRecognised EntryStatus = "recognised"
	// StatusDeferred marks revenue attributable to a day after the
	// reference date.
	StatusDeferred EntryStatus = "deferred"
)

// Kind distinguishes regular subscription charges from prorated adjustments.
type Kind string

const (
	KindSubscription Kind = "subscription"
	KindProration    Kind = "proration"
)

// Entry is one day's worth of revenue for one invoice line. Entries are
// immutable once produced: recognition status is a classification made at
// generation time, not mutable state, and re-running against a later
// reference date simply produces fresh entries.
type Entry struct {
	InvoiceLineID   string          `json:"invoice_line_id"`
	Date            civil.Date      `json:"date"`
	AmountSource    decimal.Decimal `json:"amount_source"`
	AmountReporting decimal.Decimal `json:"amount_reporting"`
	FXRate          decimal.Decimal `json:"fx_rate"`
	Status          EntryStatus     `json:"status"`
	Kind            Kind            `json:"kind"`
	SubscriptionID  string          `json:"subscription_id,omitempty"`
	CustomerID      string          `json:"customer_id"`
	SourceCurrency  string          `json:"source_currency"`
}

// Run is the artifact of one scheduler invocation: the reference date and
// currency pair it ran against plus every entry it produced. Runs carry a
// minted ID so sinks can key stored schedules.
type Run struct {
	types.Entity
	ID           id.RunID   `json:"id"`
	AsOf         civil.Date `json:"as_of"`
	Pair         fx.Pair    `json:"pair"`
	InvoiceCount int        `json:"invoice_count"`
	Entries      []*Entry   `json:"entries"`
}

// NewRun builds a Run around a finished schedule.
func NewRun(asOf civil.Date, pair fx.Pair, invoiceCount int, entries []*Entry) *Run {
	return &Run{
		Entity:       types.NewEntity(),
		ID:           id.NewRunID(),
		AsOf:         asOf,
		Pair:         pair,
		InvoiceCount: invoiceCount,
		Entries:      entries,
	}
}
