package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Sort orders entries by (date ascending, kind ascending-lexicographic),
// in place. The key is a total order over the fields it inspects, so any
// input order converges on the same presentation; the sort is stable to
// keep same-day same-kind entries in their generation order.
func Sort(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Kind < entries[j].Kind
	})
}

// Report is the recognised/deferred summary of one schedule.
// Totals are exact sums of the per-entry amounts, which are already
// rounded to two decimal places; no further rounding is applied.
type Report struct {
	SourceCurrency string `json:"source_currency,omitempty"`

	RecognisedSource    decimal.Decimal `json:"recognised_source"`
	DeferredSource      decimal.Decimal `json:"deferred_source"`
	RecognisedReporting decimal.Decimal `json:"recognised_reporting"`
	DeferredReporting   decimal.Decimal `json:"deferred_reporting"`

	// Entries is the schedule in presentation order.
	Entries []*Entry `json:"entries"`
}

// TotalSource is recognised plus deferred revenue in the source currency.
func (r *Report) TotalSource() decimal.Decimal {
	return r.RecognisedSource.Add(r.DeferredSource)
}

// TotalReporting is recognised plus deferred revenue in the reporting currency.
func (r *Report) TotalReporting() decimal.Decimal {
	return r.RecognisedReporting.Add(r.DeferredReporting)
}

// Summarize sorts a copy of the schedule and aggregates recognised and
// deferred totals per currency. Pure: the input slice is not modified.
func Summarize(entries []*Entry) *Report {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	Sort(sorted)

	r := &Report{Entries: sorted}
	if len(sorted) > 0 {
		r.SourceCurrency = sorted[0].SourceCurrency
	}

	for _, e := range sorted {
		switch e.Status {
		case StatusRecognised:
			r.RecognisedSource = r.RecognisedSource.Add(e.AmountSource)
			r.RecognisedReporting = r.RecognisedReporting.Add(e.AmountReporting)
		case StatusDeferred:
			r.DeferredSource = r.DeferredSource.Add(e.AmountSource)
			r.DeferredReporting = r.DeferredReporting.Add(e.AmountReporting)
		}
	}

	return r
}
