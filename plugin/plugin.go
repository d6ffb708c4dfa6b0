// Package plugin provides an extensible plugin system for revrec.
// Plugins can hook into scheduling, extraction, and sink lifecycle events
// to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Scheduling hooks
// ──────────────────────────────────────────────────

// OnScheduleGenerated is called after an invoice's schedule is produced.
type OnScheduleGenerated interface {
	Plugin
	OnScheduleGenerated(ctx context.Context, invoiceID string, entries int) error
}

// OnInvoiceSkipped is called when an ineligible invoice yields an empty schedule.
type OnInvoiceSkipped interface {
	Plugin
	OnInvoiceSkipped(ctx context.Context, invoiceID string, reason string) error
}

// OnLineSkipped is called when a zero-length line is skipped.
type OnLineSkipped interface {
	Plugin
	OnLineSkipped(ctx context.Context, invoiceID, lineID string) error
}

// ──────────────────────────────────────────────────
// Extraction hooks
// ──────────────────────────────────────────────────

// OnExtractCompleted is called when one resource's fetch-and-store pass finishes.
type OnExtractCompleted interface {
	Plugin
	OnExtractCompleted(ctx context.Context, resource string, records int, elapsed time.Duration) error
}

// OnExtractFailed is called when one resource's fetch-and-store pass fails.
type OnExtractFailed interface {
	Plugin
	OnExtractFailed(ctx context.Context, resource string, err error) error
}

// ──────────────────────────────────────────────────
// Sink hooks
// ──────────────────────────────────────────────────

// OnSinkWrite is called after an object is written to a sink.
type OnSinkWrite interface {
	Plugin
	OnSinkWrite(ctx context.Context, name string, records int) error
}
