package revrec

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/xraph/revrec/fx"
	"github.com/xraph/revrec/invoice"
	"github.com/xraph/revrec/plugin"
	"github.com/xraph/revrec/schedule"
)

// Engine is the revenue recognition scheduler. It expands each line of a
// paid invoice into per-day revenue entries, classified recognised or
// deferred against an injected reference date and converted to a
// reporting currency through a pluggable rate provider.
//
// The engine carries no mutable state between invocations: given the same
// invoice, reference date, pair, and provider state, its output is
// bit-identical.
type Engine struct {
	rates   fx.Provider
	plugins *plugin.Registry
	logger  *slog.Logger
	tax     TaxAdjuster

	bulkWorkers int
}

// New creates a new Engine backed by the given rate provider.
func New(rates fx.Provider, opts ...Option) *Engine {
	e := &Engine{
		rates:       rates,
		plugins:     plugin.NewRegistry(),
		logger:      slog.Default(),
		tax:         noopTax{},
		bulkWorkers: 5,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithTaxAdjuster sets the tax adjustment hook applied to each line
// before expansion. The default is a pass-through.
func WithTaxAdjuster(t TaxAdjuster) Option {
	return func(e *Engine) {
		e.tax = t
	}
}

// WithBulkWorkers sets the number of concurrent workers used by ScheduleAll.
func WithBulkWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.bulkWorkers = n
		}
	}
}

// Plugins exposes the plugin registry for inspection.
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// ──────────────────────────────────────────────────
// Scheduling
// ──────────────────────────────────────────────────

// Schedule expands a full invoice into its revenue-recognition schedule.
//
// Non-paid invoices yield an empty schedule with no error; zero-length
// lines contribute nothing. Entry order follows line order but carries no
// meaning — schedule.Summarize imposes the presentation order. The only
// failure mode is a rate provider with no quotes for the pair.
func (e *Engine) Schedule(ctx context.Context, inv *invoice.Invoice, asOf civil.Date, pair fx.Pair) ([]*schedule.Entry, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: nil invoice", ErrInvalidInput)
	}

	if !inv.Eligible() {
		e.plugins.EmitInvoiceSkipped(ctx, inv.ID, string(inv.Status))
		e.logger.Debug("invoice not eligible, skipping",
			"invoice_id", inv.ID,
			"status", inv.Status,
		)
		return nil, nil
	}

	var entries []*schedule.Entry
	for _, line := range inv.Lines {
		expanded, err := e.expandLine(ctx, inv, line, asOf, pair)
		if err != nil {
			return nil, fmt.Errorf("expand line %s: %w", line.ID, err)
		}
		entries = append(entries, expanded...)
	}

	e.plugins.EmitScheduleGenerated(ctx, inv.ID, len(entries))
	e.logger.Debug("invoice scheduled",
		"invoice_id", inv.ID,
		"lines", len(inv.Lines),
		"entries", len(entries),
	)

	return entries, nil
}

// expandLine produces one entry per calendar day of the line's service
// period, allocating the line amount straight-line across the days.
func (e *Engine) expandLine(ctx context.Context, inv *invoice.Invoice, line invoice.Line, asOf civil.Date, pair fx.Pair) ([]*schedule.Entry, error) {
	// The zero-length check must precede the division below.
	length := line.PeriodDays()
	if length <= 0 {
		e.plugins.EmitLineSkipped(ctx, inv.ID, line.ID)
		return nil, nil
	}

	line, err := e.tax.AdjustLine(ctx, line)
	if err != nil {
		return nil, fmt.Errorf("adjust tax: %w", err)
	}

	kind := schedule.KindSubscription
	if line.Proration {
		kind = schedule.KindProration
	}

	// Equal daily split; the rounding residue of an uneven division is
	// deliberately left unreconciled across the period.
	daily := line.Amount.Decimal().Div(decimal.NewFromInt(int64(length)))
	start := civil.DateOf(line.PeriodStart.UTC())

	entries := make([]*schedule.Entry, 0, length)
	for i := 0; i < length; i++ {
		day := start.AddDays(i)

		rate, err := e.rates.Rate(ctx, day, pair)
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", day, err)
		}

		status := schedule.StatusDeferred
		if !day.After(asOf) {
			status = schedule.StatusRecognised
		}

		// Source and reporting amounts are each rounded half-up to two
		// places from the unrounded daily value, not from each other.
		entries = append(entries, &schedule.Entry{
			InvoiceLineID:   line.ID,
			Date:            day,
			AmountSource:    daily.Round(2),
			AmountReporting: daily.Mul(rate).Round(2),
			FXRate:          rate,
			Status:          status,
			Kind:            kind,
			SubscriptionID:  line.SubscriptionID,
			CustomerID:      inv.CustomerID,
			SourceCurrency:  inv.Currency,
		})
	}

	return entries, nil
}

// Summarize sorts and aggregates a schedule into recognised/deferred
// totals per currency.
func (e *Engine) Summarize(entries []*schedule.Entry) *schedule.Report {
	return schedule.Summarize(entries)
}

// ──────────────────────────────────────────────────
// Bulk scheduling
// ──────────────────────────────────────────────────

// ScheduleAll schedules many invoices concurrently with complete
// isolation between them: one invoice's failure never corrupts or aborts
// its siblings. Entries are returned in invoice input order. When any
// invoices failed, the returned error is a *MultiError of InvoiceError
// values alongside the entries of the invoices that succeeded.
func (e *Engine) ScheduleAll(ctx context.Context, invoices []*invoice.Invoice, asOf civil.Date, pair fx.Pair) ([]*schedule.Entry, error) {
	results := make([][]*schedule.Entry, len(invoices))
	errs := make([]error, len(invoices))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := e.bulkWorkers
	if workers > len(invoices) {
		workers = len(invoices)
	}

	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				inv := invoices[i]
				entries, err := e.Schedule(ctx, inv, asOf, pair)
				if err != nil {
					// inv may be nil here; Schedule rejects that with
					// ErrInvalidInput rather than panicking, and so must we.
					invoiceID := "<nil>"
					if inv != nil {
						invoiceID = inv.ID
					}
					errs[i] = InvoiceError{InvoiceID: invoiceID, Err: err}
					continue
				}
				results[i] = entries
			}
		}()
	}

	for i := range invoices {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var entries []*schedule.Entry
	merr := &MultiError{}
	for i := range invoices {
		entries = append(entries, results[i]...)
		merr.Add(errs[i])
	}

	e.logger.Info("bulk schedule completed",
		"invoices", len(invoices),
		"entries", len(entries),
		"failures", len(merr.Errors),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if merr.HasErrors() {
		return entries, merr
	}
	return entries, nil
}
