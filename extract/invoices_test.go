package extract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/revrec/invoice"
)

const rawInvoice = `{
	"id": "in_100",
	"status": "paid",
	"created": 1740787200,
	"currency": "usd",
	"customer": {"id": "cus_9"},
	"lines": {
		"data": [
			{
				"id": "il_sub",
				"amount": 3000,
				"currency": "usd",
				"period": {"start": 1740787200, "end": 1743465600},
				"parent": {
					"type": "subscription_item_details",
					"subscription_item_details": {
						"proration": false,
						"subscription": "sub_1"
					}
				}
			},
			{
				"id": "il_pro",
				"amount": -250,
				"currency": "usd",
				"period": {"start": 1740787200, "end": 1741392000},
				"parent": {
					"type": "invoice_item_details",
					"invoice_item_details": {
						"proration": true,
						"subscription": "sub_1"
					}
				}
			}
		]
	}
}`

func TestMapRecord(t *testing.T) {
	inv, err := MapRecord(Record{ID: "in_100", Data: json.RawMessage(rawInvoice)})
	require.NoError(t, err)

	assert.Equal(t, "in_100", inv.ID)
	assert.Equal(t, invoice.StatusPaid, inv.Status)
	assert.True(t, inv.Eligible())
	assert.Equal(t, "cus_9", inv.CustomerID)
	assert.Equal(t, "usd", inv.Currency)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), inv.CreatedAt)

	require.Len(t, inv.Lines, 2)

	sub := inv.Lines[0]
	assert.Equal(t, "il_sub", sub.ID)
	assert.Equal(t, int64(3000), sub.Amount.Amount)
	assert.Equal(t, "usd", sub.Amount.Currency)
	assert.False(t, sub.Proration)
	assert.Equal(t, "sub_1", sub.SubscriptionID)
	assert.Equal(t, 31, sub.PeriodDays())

	pro := inv.Lines[1]
	assert.Equal(t, "il_pro", pro.ID)
	assert.Equal(t, int64(-250), pro.Amount.Amount)
	assert.True(t, pro.Proration)
	assert.Equal(t, 7, pro.PeriodDays())
}

func TestMapRecordInvalidJSON(t *testing.T) {
	_, err := MapRecord(Record{ID: "in_bad", Data: json.RawMessage(`{`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in_bad")
}

func TestMapRecordsOpenInvoice(t *testing.T) {
	raw := `{"id": "in_open", "status": "open", "currency": "eur"}`
	invs, err := MapRecords([]Record{{ID: "in_open", Data: json.RawMessage(raw)}})
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.False(t, invs[0].Eligible())
}
