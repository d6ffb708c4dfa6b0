// Package extract pulls raw billing records out of the payment platform
// and lands them in a store.Sink as timestamped JSON objects, one per
// resource. Pagination is cursor-based: each page is requested with the
// ID of the previous page's last record.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record is one raw platform object, kept as the payload the API
// returned. Only the ID is lifted out, to drive the pagination cursor.
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Page is one page of records plus whether more pages follow.
type Page struct {
	Records []Record
	HasMore bool
}

// Fetcher retrieves one page of a resource starting after the cursor.
// An empty cursor means the first page.
type Fetcher interface {
	Fetch(ctx context.Context, desc Descriptor, cursor string) (*Page, error)
}

// All drains a resource page by page, following the cursor until the
// platform reports no more records.
func All(ctx context.Context, f Fetcher, desc Descriptor) ([]Record, error) {
	var (
		records []Record
		cursor  string
	)

	for {
		page, err := f.Fetch(ctx, desc, cursor)
		if err != nil {
			return nil, fmt.Errorf("extract: fetch %s after %q: %w", desc.Resource, cursor, err)
		}

		records = append(records, page.Records...)

		if !page.HasMore || len(page.Records) == 0 {
			return records, nil
		}
		cursor = page.Records[len(page.Records)-1].ID
	}
}
