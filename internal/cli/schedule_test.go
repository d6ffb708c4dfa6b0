package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInvoices = `[
	{
		"id": "in_1",
		"status": "paid",
		"created": 1740787200,
		"currency": "usd",
		"customer": {"id": "cus_1"},
		"lines": {
			"data": [
				{
					"id": "il_1",
					"amount": 3000,
					"currency": "usd",
					"period": {"start": 1740787200, "end": 1741046400},
					"parent": {
						"type": "subscription_item_details",
						"subscription_item_details": {"proration": false, "subscription": "sub_1"}
					}
				}
			]
		}
	},
	{"id": "in_2", "status": "draft", "currency": "usd"}
]`

const testRates = `[
	{"date": "2025-03-01", "rate": "0.80"}
]`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	invoices := filepath.Join(dir, "invoices.json")
	rates := filepath.Join(dir, "rates.json")
	require.NoError(t, os.WriteFile(invoices, []byte(testInvoices), 0o644))
	require.NoError(t, os.WriteFile(rates, []byte(testRates), 0o644))
	return invoices, rates
}

func runSchedule(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmdForTest()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"schedule"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestScheduleCommandJSON(t *testing.T) {
	invoices, rates := writeFixtures(t)

	out, err := runSchedule(t,
		"--invoices", invoices,
		"--rates", rates,
		"--as-of", "2025-03-02",
		"--pair", "usd/gbp",
		"--json",
	)
	require.NoError(t, err)

	var report struct {
		SourceCurrency   string          `json:"source_currency"`
		RecognisedSource json.RawMessage `json:"recognised_source"`
		Entries          []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "usd", report.SourceCurrency)
	// 3000 minor units over 3 days, as-of day two: 2 recognised, 1 deferred.
	require.Len(t, report.Entries, 3)
	assert.Equal(t, "recognised", report.Entries[0].Status)
	assert.Equal(t, "recognised", report.Entries[1].Status)
	assert.Equal(t, "deferred", report.Entries[2].Status)
}

func TestScheduleCommandText(t *testing.T) {
	invoices, rates := writeFixtures(t)

	out, err := runSchedule(t,
		"--invoices", invoices,
		"--rates", rates,
		"--as-of", "2025-03-02",
		"--pair", "usd/gbp",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "recognised")
	assert.Contains(t, out, "deferred")
	assert.Contains(t, out, "USD")
	assert.Contains(t, out, "GBP")
}

func TestScheduleCommandBadPair(t *testing.T) {
	invoices, rates := writeFixtures(t)

	_, err := runSchedule(t,
		"--invoices", invoices,
		"--rates", rates,
		"--as-of", "2025-03-02",
		"--pair", "usdgbp",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pair")
}

func TestScheduleCommandBadDate(t *testing.T) {
	invoices, rates := writeFixtures(t)

	_, err := runSchedule(t,
		"--invoices", invoices,
		"--rates", rates,
		"--as-of", "03/02/2025",
		"--pair", "usd/gbp",
	)
	require.Error(t, err)
}

func TestScheduleCommandMissingRates(t *testing.T) {
	invoices, _ := writeFixtures(t)
	emptyRates := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(emptyRates, []byte(`[]`), 0o644))

	_, err := runSchedule(t,
		"--invoices", invoices,
		"--rates", emptyRates,
		"--as-of", "2025-03-02",
		"--pair", "usd/gbp",
	)
	require.Error(t, err)
}
