// Package audithook bridges revrec lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import any
// particular audit system directly. Callers inject a RecorderFunc adapter
// that bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/revrec/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin              = (*Extension)(nil)
	_ plugin.OnScheduleGenerated = (*Extension)(nil)
	_ plugin.OnInvoiceSkipped    = (*Extension)(nil)
	_ plugin.OnLineSkipped       = (*Extension)(nil)
	_ plugin.OnExtractCompleted  = (*Extension)(nil)
	_ plugin.OnExtractFailed     = (*Extension)(nil)
	_ plugin.OnSinkWrite         = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that the audithook package does not depend on a
// concrete audit system — callers inject their backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges revrec lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Scheduling lifecycle hooks
// ──────────────────────────────────────────────────

// OnScheduleGenerated implements plugin.OnScheduleGenerated.
func (e *Extension) OnScheduleGenerated(ctx context.Context, invoiceID string, entries int) error {
	return e.record(ctx, ActionScheduleGenerated, SeverityInfo, OutcomeSuccess,
		ResourceSchedule, invoiceID, CategoryRecognition, nil,
		"invoice_id", invoiceID,
		"entries", entries,
	)
}

// OnInvoiceSkipped implements plugin.OnInvoiceSkipped.
func (e *Extension) OnInvoiceSkipped(ctx context.Context, invoiceID, reason string) error {
	return e.record(ctx, ActionInvoiceSkipped, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, invoiceID, CategoryRecognition, nil,
		"invoice_id", invoiceID,
		"skip_reason", reason,
	)
}

// OnLineSkipped implements plugin.OnLineSkipped.
func (e *Extension) OnLineSkipped(ctx context.Context, invoiceID, lineID string) error {
	return e.record(ctx, ActionLineSkipped, SeverityWarning, OutcomeSuccess,
		ResourceInvoice, invoiceID, CategoryRecognition, nil,
		"invoice_id", invoiceID,
		"line_id", lineID,
	)
}

// ──────────────────────────────────────────────────
// Extraction lifecycle hooks
// ──────────────────────────────────────────────────

// OnExtractCompleted implements plugin.OnExtractCompleted.
func (e *Extension) OnExtractCompleted(ctx context.Context, resource string, records int, elapsed time.Duration) error {
	return e.record(ctx, ActionExtractCompleted, SeverityInfo, OutcomeSuccess,
		ResourceExtract, resource, CategoryExtraction, nil,
		"resource", resource,
		"records", records,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// OnExtractFailed implements plugin.OnExtractFailed.
func (e *Extension) OnExtractFailed(ctx context.Context, resource string, extractErr error) error {
	return e.record(ctx, ActionExtractFailed, SeverityError, OutcomeFailure,
		ResourceExtract, resource, CategoryExtraction, extractErr,
		"resource", resource,
	)
}

// ──────────────────────────────────────────────────
// Sink lifecycle hooks
// ──────────────────────────────────────────────────

// OnSinkWrite implements plugin.OnSinkWrite.
func (e *Extension) OnSinkWrite(ctx context.Context, name string, records int) error {
	return e.record(ctx, ActionSinkWrite, SeverityInfo, OutcomeSuccess,
		ResourceSink, name, CategoryStorage, nil,
		"object", name,
		"records", records,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
