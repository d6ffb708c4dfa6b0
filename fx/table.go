package fx

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Quote is one dated rate observation for a currency pair.
type Quote struct {
	Date civil.Date      `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// Table is an in-memory Provider backed by a per-pair quote table.
// It is safe for concurrent lookup and population: AddQuote is an
// idempotent upsert, so racing writers of the same quote converge on
// the same state.
type Table struct {
	mu     sync.RWMutex
	quotes map[Pair][]Quote // sorted by date ascending
}

var _ Provider = (*Table)(nil)

// NewTable creates an empty quote table.
func NewTable() *Table {
	return &Table{quotes: make(map[Pair][]Quote)}
}

// AddQuote records the rate quoted for a pair on a date. Re-adding the
// same date replaces the existing quote.
func (t *Table) AddQuote(pair Pair, date civil.Date, rate decimal.Decimal) {
	key := pair.normalized()

	t.mu.Lock()
	defer t.mu.Unlock()

	qs := t.quotes[key]
	i := sort.Search(len(qs), func(i int) bool { return !qs[i].Date.Before(date) })
	if i < len(qs) && qs[i].Date == date {
		qs[i].Rate = rate
		return
	}

	qs = append(qs, Quote{})
	copy(qs[i+1:], qs[i:])
	qs[i] = Quote{Date: date, Rate: rate}
	t.quotes[key] = qs
}

// Rate returns the rate effective for date: the first quote on or after
// it, falling back to the latest known quote. ErrNoRate when the table
// holds no quotes for the pair.
func (t *Table) Rate(_ context.Context, date civil.Date, pair Pair) (decimal.Decimal, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	qs := t.quotes[pair.normalized()]
	if len(qs) == 0 {
		return decimal.Decimal{}, fmt.Errorf("pair %s: %w", pair, ErrNoRate)
	}

	i := sort.Search(len(qs), func(i int) bool { return !qs[i].Date.Before(date) })
	if i < len(qs) {
		return qs[i].Rate, nil
	}

	return qs[len(qs)-1].Rate, nil
}

// Quotes returns a copy of the quotes held for a pair, sorted by date.
func (t *Table) Quotes(pair Pair) []Quote {
	t.mu.RLock()
	defer t.mu.RUnlock()

	qs := t.quotes[pair.normalized()]
	out := make([]Quote, len(qs))
	copy(out, qs)
	return out
}
