// Package observability provides a metrics extension for revrec that records
// lifecycle event counts via a pluggable MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/xraph/revrec/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin              = (*MetricsExtension)(nil)
	_ plugin.OnScheduleGenerated = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceSkipped    = (*MetricsExtension)(nil)
	_ plugin.OnLineSkipped       = (*MetricsExtension)(nil)
	_ plugin.OnExtractCompleted  = (*MetricsExtension)(nil)
	_ plugin.OnExtractFailed     = (*MetricsExtension)(nil)
	_ plugin.OnSinkWrite         = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a revrec plugin to automatically track scheduling and
// extraction metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Scheduling metrics
	SchedulesGenerated Counter
	EntriesGenerated   Counter
	ScheduleSize       Histogram
	InvoicesSkipped    Counter
	LinesSkipped       Counter

	// Extraction metrics
	ExtractSuccess Counter
	ExtractFailure Counter
	ExtractRecords Counter
	ExtractLatency Histogram

	// Sink metrics
	SinkWrites       Counter
	SinkRecordsBatch Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Scheduling metrics
		SchedulesGenerated: factory.Counter("revrec.schedule.generated"),
		EntriesGenerated:   factory.Counter("revrec.schedule.entries"),
		ScheduleSize:       factory.Histogram("revrec.schedule.size"),
		InvoicesSkipped:    factory.Counter("revrec.invoice.skipped"),
		LinesSkipped:       factory.Counter("revrec.line.skipped"),

		// Extraction metrics
		ExtractSuccess: factory.Counter("revrec.extract.success"),
		ExtractFailure: factory.Counter("revrec.extract.failure"),
		ExtractRecords: factory.Counter("revrec.extract.records"),
		ExtractLatency: factory.Histogram("revrec.extract.latency_ms"),

		// Sink metrics
		SinkWrites:       factory.Counter("revrec.sink.writes"),
		SinkRecordsBatch: factory.Histogram("revrec.sink.batch.size"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// ──────────────────────────────────────────────────
// Scheduling lifecycle hooks
// ──────────────────────────────────────────────────

// OnScheduleGenerated implements plugin.OnScheduleGenerated.
func (m *MetricsExtension) OnScheduleGenerated(_ context.Context, _ string, entries int) error {
	m.SchedulesGenerated.Inc()
	m.EntriesGenerated.Add(float64(entries))
	m.ScheduleSize.Observe(float64(entries))
	return nil
}

// OnInvoiceSkipped implements plugin.OnInvoiceSkipped.
func (m *MetricsExtension) OnInvoiceSkipped(_ context.Context, _, _ string) error {
	m.InvoicesSkipped.Inc()
	return nil
}

// OnLineSkipped implements plugin.OnLineSkipped.
func (m *MetricsExtension) OnLineSkipped(_ context.Context, _, _ string) error {
	m.LinesSkipped.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Extraction lifecycle hooks
// ──────────────────────────────────────────────────

// OnExtractCompleted implements plugin.OnExtractCompleted.
func (m *MetricsExtension) OnExtractCompleted(_ context.Context, _ string, records int, elapsed time.Duration) error {
	m.ExtractSuccess.Inc()
	m.ExtractRecords.Add(float64(records))
	m.ExtractLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// OnExtractFailed implements plugin.OnExtractFailed.
func (m *MetricsExtension) OnExtractFailed(_ context.Context, _ string, _ error) error {
	m.ExtractFailure.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Sink lifecycle hooks
// ──────────────────────────────────────────────────

// OnSinkWrite implements plugin.OnSinkWrite.
func (m *MetricsExtension) OnSinkWrite(_ context.Context, _ string, records int) error {
	m.SinkWrites.Inc()
	m.SinkRecordsBatch.Observe(float64(records))
	return nil
}
