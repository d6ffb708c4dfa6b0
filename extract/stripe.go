package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/invoice"
	"github.com/stripe/stripe-go/v82/invoiceitem"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/subscriptionitem"
)

// StripeFetcher implements Fetcher against the Stripe API.
type StripeFetcher struct {
	apiKey string
}

var _ Fetcher = (*StripeFetcher)(nil)

// NewStripeFetcher creates a fetcher authenticating with the given secret key.
func NewStripeFetcher(apiKey string) *StripeFetcher {
	return &StripeFetcher{apiKey: apiKey}
}

// listIter is the common surface of the generated per-resource
// iterators; each embeds *stripe.Iter, which provides all four methods.
type listIter interface {
	Next() bool
	Current() interface{}
	Err() error
	Meta() *stripe.ListMeta
}

// Fetch implements Fetcher: one page of the resource, requested with
// Single so the iterator does not auto-advance past the page boundary.
func (f *StripeFetcher) Fetch(_ context.Context, desc Descriptor, cursor string) (*Page, error) {
	stripe.Key = f.apiKey

	lp := stripe.ListParams{
		Single: true,
		Limit:  stripe.Int64(int64(desc.pageSize())),
	}
	if cursor != "" {
		lp.StartingAfter = stripe.String(cursor)
	}
	for _, e := range desc.Expand {
		lp.AddExpand(e)
	}

	it, err := f.list(desc, lp)
	if err != nil {
		return nil, err
	}
	return collect(it)
}

// list dispatches to the resource's typed list call.
func (f *StripeFetcher) list(desc Descriptor, lp stripe.ListParams) (listIter, error) {
	switch desc.Resource {
	case "invoices":
		return invoice.List(&stripe.InvoiceListParams{ListParams: lp}), nil

	case "subscriptions":
		params := &stripe.SubscriptionListParams{ListParams: lp}
		if status := desc.Params["status"]; status != "" {
			params.Status = stripe.String(status)
		}
		return subscription.List(params), nil

	case "subscription_items":
		// The platform only lists items within one subscription.
		params := &stripe.SubscriptionItemListParams{ListParams: lp}
		if sub := desc.Params["subscription"]; sub != "" {
			params.Subscription = stripe.String(sub)
		}
		return subscriptionitem.List(params), nil

	case "invoice_items":
		return invoiceitem.List(&stripe.InvoiceItemListParams{ListParams: lp}), nil

	case "customers":
		return customer.List(&stripe.CustomerListParams{ListParams: lp}), nil

	default:
		return nil, fmt.Errorf("extract: unknown resource %q", desc.Resource)
	}
}

// collect drains one single-page iterator into records, keeping each
// item's full payload and lifting its ID for the cursor.
func collect(it listIter) (*Page, error) {
	page := &Page{}

	for it.Next() {
		data, err := json.Marshal(it.Current())
		if err != nil {
			return nil, fmt.Errorf("extract: encode record: %w", err)
		}

		var envelope struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("extract: decode record id: %w", err)
		}

		page.Records = append(page.Records, Record{ID: envelope.ID, Data: data})
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	if meta := it.Meta(); meta != nil {
		page.HasMore = meta.HasMore
	}
	return page, nil
}
