// Package revrec turns paid billing-platform invoices into day-granular
// revenue recognition schedules.
//
// revrec is designed as a library, not a service. Import it directly into
// your Go application or drive it through the batch CLI. It provides:
//
//   - Straight-line daily allocation of invoice lines over their service period
//   - Recognised/deferred classification against an injected reference date
//   - Reporting-currency conversion at the historical rate of each day
//   - Cursor-based extraction of billing resources into pluggable sinks
//   - Lifecycle plugins for metrics and audit trails
//
// # Quick Start
//
// Create an engine with a rate provider:
//
//	import (
//	    "cloud.google.com/go/civil"
//	    "github.com/shopspring/decimal"
//
//	    "github.com/xraph/revrec"
//	    "github.com/xraph/revrec/fx"
//	)
//
//	// Populate historical rates
//	rates := fx.NewTable()
//	pair := fx.NewPair("usd", "gbp")
//	rates.AddQuote(pair, civil.Date{Year: 2025, Month: 3, Day: 1},
//	    decimal.RequireFromString("0.80"))
//
//	// Create the engine
//	engine := revrec.New(rates)
//
//	// Expand a paid invoice as of a reference date
//	entries, err := engine.Schedule(ctx, inv,
//	    civil.Date{Year: 2025, Month: 3, Day: 15}, pair)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Aggregate into recognised/deferred totals
//	report := engine.Summarize(entries)
//
// # Core Concepts
//
// An invoice line's amount covers a half-open service period
// [PeriodStart, PeriodEnd). The engine splits it evenly across the
// period's days; every day on or before the reference date is recognised
// revenue, every later day is deferred. Each day's reporting amount uses
// the exchange rate effective for that day.
//
// Scheduling is deterministic: the same invoice, reference date, pair,
// and provider state always produce bit-identical entries. Entries carry
// no minted identity for exactly that reason.
//
// All monetary inputs use integer arithmetic in the smallest currency
// unit (cents for USD, pence for GBP); per-day amounts are fixed-point
// decimals rounded half-up to two places.
//
// # Extraction
//
// The extract package drains billing resources page by page and lands
// them in a store.Sink:
//
//	fetcher := extract.NewStripeFetcher(apiKey)
//	runner := extract.NewRunner(fetcher, sink)
//	results := runner.Run(ctx)
//
// Sink backends live under store/: memory, gcs, postgres, and mongo.
package revrec
