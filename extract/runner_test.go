package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/revrec/store/memory"
)

// resourceFetcher serves one canned page per resource and can fail
// selected resources.
type resourceFetcher struct {
	byResource map[string][]Record
	failing    map[string]error
}

func (f *resourceFetcher) Fetch(_ context.Context, desc Descriptor, _ string) (*Page, error) {
	if err := f.failing[desc.Resource]; err != nil {
		return nil, err
	}
	return &Page{Records: f.byResource[desc.Resource]}, nil
}

func TestRunnerRun(t *testing.T) {
	fetcher := &resourceFetcher{byResource: map[string][]Record{
		"invoices":  {rec("in_1"), rec("in_2")},
		"customers": {rec("cus_1")},
	}}
	sink := memory.New()

	at := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	runner := NewRunner(fetcher, sink,
		WithDescriptors([]Descriptor{
			{Resource: "invoices"},
			{Resource: "customers"},
		}),
		WithClock(func() time.Time { return at }),
	)

	results := runner.Run(context.Background())
	require.Len(t, results, 2)

	// Results come back in descriptor order regardless of goroutine timing.
	assert.Equal(t, "invoices", results[0].Resource)
	assert.Equal(t, 2, results[0].Records)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "invoices/invoices_20250301_060000.json", results[0].Object)
	assert.False(t, results[0].JobID.IsNil())

	assert.Equal(t, "customers", results[1].Resource)
	assert.Equal(t, 1, results[1].Records)

	assert.Equal(t, 2, sink.Len())
	_, err := sink.Get("customers/customers_20250301_060000.json")
	assert.NoError(t, err)
}

func TestRunnerIsolatesFailures(t *testing.T) {
	boom := errors.New("upstream down")
	fetcher := &resourceFetcher{
		byResource: map[string][]Record{"customers": {rec("cus_1")}},
		failing:    map[string]error{"invoices": boom},
	}
	sink := memory.New()

	runner := NewRunner(fetcher, sink, WithDescriptors([]Descriptor{
		{Resource: "invoices"},
		{Resource: "customers"},
	}))

	results := runner.Run(context.Background())
	require.Len(t, results, 2)

	require.Error(t, results[0].Err)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.Empty(t, results[0].Object)

	require.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[1].Records)
	assert.Equal(t, 1, sink.Len())
}

func TestRunnerSinkFailure(t *testing.T) {
	fetcher := &resourceFetcher{byResource: map[string][]Record{
		"customers": {rec("cus_1")},
	}}
	sink := memory.New()
	require.NoError(t, sink.Close())

	runner := NewRunner(fetcher, sink, WithDescriptors([]Descriptor{
		{Resource: "customers"},
	}))

	results := runner.Run(context.Background())
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
}
