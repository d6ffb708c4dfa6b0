package extract

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"

	"github.com/xraph/revrec/invoice"
	"github.com/xraph/revrec/types"
)

// MapInvoice converts one platform invoice into the recognition model.
func MapInvoice(in *stripe.Invoice) *invoice.Invoice {
	out := &invoice.Invoice{
		ID:        in.ID,
		Status:    invoice.Status(in.Status),
		CreatedAt: time.Unix(in.Created, 0).UTC(),
		Currency:  string(in.Currency),
	}
	if in.Customer != nil {
		out.CustomerID = in.Customer.ID
	}
	if in.Lines == nil {
		return out
	}

	for _, li := range in.Lines.Data {
		if li == nil {
			continue
		}
		out.Lines = append(out.Lines, mapLine(li))
	}
	return out
}

func mapLine(li *stripe.InvoiceLineItem) invoice.Line {
	line := invoice.Line{
		ID:     li.ID,
		Amount: types.Minor(li.Amount, string(li.Currency)),
	}
	if li.Period != nil {
		line.PeriodStart = time.Unix(li.Period.Start, 0).UTC()
		line.PeriodEnd = time.Unix(li.Period.End, 0).UTC()
	}

	// The line's origin lives under parent details since the platform's
	// basil API; both origins carry the proration flag.
	if p := li.Parent; p != nil {
		switch {
		case p.SubscriptionItemDetails != nil:
			line.Proration = p.SubscriptionItemDetails.Proration
			line.SubscriptionID = p.SubscriptionItemDetails.Subscription
		case p.InvoiceItemDetails != nil:
			line.Proration = p.InvoiceItemDetails.Proration
			line.SubscriptionID = p.InvoiceItemDetails.Subscription
		}
	}
	return line
}

// MapRecord decodes one extracted invoice record into the recognition model.
func MapRecord(rec Record) (*invoice.Invoice, error) {
	var in stripe.Invoice
	if err := json.Unmarshal(rec.Data, &in); err != nil {
		return nil, fmt.Errorf("extract: decode invoice %s: %w", rec.ID, err)
	}
	return MapInvoice(&in), nil
}

// MapRecords decodes a batch of extracted invoice records.
func MapRecords(recs []Record) ([]*invoice.Invoice, error) {
	out := make([]*invoice.Invoice, 0, len(recs))
	for _, rec := range recs {
		inv, err := MapRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}
