package audithook

// Action constants for audit events.
const (
	// Scheduling actions
	ActionScheduleGenerated = "schedule.generated"
	ActionInvoiceSkipped    = "invoice.skipped"
	ActionLineSkipped       = "line.skipped"

	// Extraction actions
	ActionExtractCompleted = "extract.completed"
	ActionExtractFailed    = "extract.failed"

	// Sink actions
	ActionSinkWrite = "sink.write"
)

// Resource constants for audit events.
const (
	ResourceSchedule = "schedule"
	ResourceInvoice  = "invoice"
	ResourceExtract  = "extract"
	ResourceSink     = "sink"
)

// Category constants for audit events.
const (
	CategoryRecognition = "recognition"
	CategoryExtraction  = "extraction"
	CategoryStorage     = "storage"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
