// Package invoice holds the inbound billing data model consumed by the
// scheduler. Records arrive from an external extraction process already
// shaped like this; revrec never writes them back.
package invoice

import (
	"time"

	"github.com/xraph/revrec/types"
)

// Status is the invoice lifecycle state as reported by the billing platform.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusOpen          Status = "open"
	StatusPaid          Status = "paid"
	StatusUncollectible Status = "uncollectible"
	StatusVoid          Status = "void"
)

// Invoice is one billing-platform invoice with its line items.
// The currency is assumed uniform across all lines of one invoice.
type Invoice struct {
	ID         string    `json:"id"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	CustomerID string    `json:"customer_id"`
	Currency   string    `json:"currency"`
	Lines      []Line    `json:"lines"`
}

// Eligible reports whether the invoice qualifies for revenue scheduling.
// Only paid invoices are scheduled; everything else yields an empty
// schedule without error.
func (i *Invoice) Eligible() bool {
	return i.Status == StatusPaid
}

// Line is one billable component of an invoice. Amount covers the entire
// service period [PeriodStart, PeriodEnd).
type Line struct {
	ID             string      `json:"id"`
	Amount         types.Money `json:"amount"`
	PeriodStart    time.Time   `json:"period_start"`
	PeriodEnd      time.Time   `json:"period_end"`
	Proration      bool        `json:"proration"`
	SubscriptionID string      `json:"subscription_id,omitempty"`
}

// PeriodDays returns the whole-day length of the service period.
// Zero or negative lengths mean the line contributes no schedule entries.
func (l Line) PeriodDays() int {
	return int(l.PeriodEnd.Sub(l.PeriodStart).Hours() / 24)
}
