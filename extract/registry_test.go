package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDescriptors(t *testing.T) {
	descs := DefaultDescriptors()

	byResource := make(map[string]Descriptor)
	for _, d := range descs {
		byResource[d.Resource] = d
	}

	require.Contains(t, byResource, "invoices")
	assert.Equal(t, []string{"data.lines"}, byResource["invoices"].Expand)

	require.Contains(t, byResource, "subscriptions")
	assert.Equal(t, []string{"data.items"}, byResource["subscriptions"].Expand)
	assert.Equal(t, "all", byResource["subscriptions"].Params["status"])

	assert.Contains(t, byResource, "subscription_items")
	assert.Contains(t, byResource, "invoice_items")
	assert.Contains(t, byResource, "customers")
}

func TestDescriptorPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Descriptor{}.pageSize())
	assert.Equal(t, 25, Descriptor{PageSize: 25}.pageSize())
}

func TestMergeDescriptors(t *testing.T) {
	base := []Descriptor{
		{Resource: "invoices", Expand: []string{"data.lines"}},
		{Resource: "customers"},
	}
	overrides := []Descriptor{
		{Resource: "invoices", PageSize: 10},
		{Resource: "charges"},
	}

	merged := MergeDescriptors(base, overrides)
	require.Len(t, merged, 3)

	// Override replaces the default wholesale.
	assert.Equal(t, "invoices", merged[0].Resource)
	assert.Equal(t, 10, merged[0].PageSize)
	assert.Empty(t, merged[0].Expand)

	assert.Equal(t, "customers", merged[1].Resource)
	assert.Equal(t, "charges", merged[2].Resource)
}

func TestLoadDescriptors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.yaml")
	content := `
resources:
  - resource: invoices
    expand: ["data.lines", "data.discounts"]
    page_size: 50
  - resource: charges
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	descs, err := LoadDescriptors(path)
	require.NoError(t, err)

	byResource := make(map[string]Descriptor)
	for _, d := range descs {
		byResource[d.Resource] = d
	}

	assert.Equal(t, 50, byResource["invoices"].PageSize)
	assert.Equal(t, []string{"data.lines", "data.discounts"}, byResource["invoices"].Expand)
	assert.Contains(t, byResource, "charges")
	// Untouched defaults survive the merge.
	assert.Contains(t, byResource, "customers")
}

func TestLoadDescriptorsMissingFile(t *testing.T) {
	_, err := LoadDescriptors(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
