// Package fx provides historical exchange-rate lookup for the scheduler.
//
// The scheduler treats the rate source as a pluggable collaborator: any
// implementation of Provider can back it, from the in-memory quote table
// used in tests and batch runs to a remote rate service.
package fx

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ErrNoRate is returned when a provider holds no quotes at all for the
// requested currency pair. Missing future-dated quotes are not an error;
// see the Provider contract.
var ErrNoRate = errors.New("fx: no rate available for currency pair")

// Pair is a source/target currency pair. Codes are opaque ISO-style
// strings, compared case-insensitively.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewPair builds a Pair with both codes lowercased.
func NewPair(from, to string) Pair {
	return Pair{From: strings.ToLower(from), To: strings.ToLower(to)}
}

// String renders the pair as "usd/gbp".
func (p Pair) String() string {
	return p.From + "/" + p.To
}

// normalized returns the pair with lowercased codes, for use as a map key.
func (p Pair) normalized() Pair {
	return Pair{From: strings.ToLower(p.From), To: strings.ToLower(p.To)}
}

// Provider looks up the conversion rate effective for a calendar date.
//
// Contract: the returned rate is the one quoted for the first available
// date on or after the requested date; when no quote exists on or after
// it, the latest known quote applies. A provider fails with ErrNoRate
// only when it has zero quotes for the pair. Lookups are side-effect
// free and idempotent: identical arguments return identical results.
type Provider interface {
	Rate(ctx context.Context, date civil.Date, pair Pair) (decimal.Decimal, error)
}
