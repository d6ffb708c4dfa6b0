package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPageSize is the page size requested from the platform unless a
// descriptor overrides it.
const DefaultPageSize = 100

// Descriptor names one platform resource to extract and how to request it.
type Descriptor struct {
	// Resource is the platform collection name, e.g. "invoices".
	Resource string `yaml:"resource"`

	// Expand lists nested collections to inline into each record.
	Expand []string `yaml:"expand,omitempty"`

	// PageSize overrides DefaultPageSize when positive.
	PageSize int `yaml:"page_size,omitempty"`

	// Params carries extra request filters, e.g. a subscription scope
	// for subscription_items.
	Params map[string]string `yaml:"params,omitempty"`
}

func (d Descriptor) pageSize() int {
	if d.PageSize > 0 {
		return d.PageSize
	}
	return DefaultPageSize
}

// DefaultDescriptors returns the standard extraction set: every resource
// the recognition pipeline consumes, with the expansions it needs.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{Resource: "invoices", Expand: []string{"data.lines"}},
		{Resource: "subscriptions", Expand: []string{"data.items"}, Params: map[string]string{"status": "all"}},
		// The platform scopes this listing to one subscription; supply it
		// through a "subscription" param override.
		{Resource: "subscription_items"},
		{Resource: "invoice_items"},
		{Resource: "customers"},
	}
}

// descriptorFile is the YAML shape of a descriptor override file.
type descriptorFile struct {
	Resources []Descriptor `yaml:"resources"`
}

// LoadDescriptors reads a YAML override file and merges it over the
// defaults: listed resources replace their default descriptor, unknown
// resources are appended, resources absent from the file keep their
// default.
func LoadDescriptors(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: read descriptors: %w", err)
	}

	var file descriptorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("extract: parse descriptors: %w", err)
	}

	return MergeDescriptors(DefaultDescriptors(), file.Resources), nil
}

// MergeDescriptors overlays overrides onto base by resource name,
// preserving base order and appending new resources in override order.
func MergeDescriptors(base, overrides []Descriptor) []Descriptor {
	byResource := make(map[string]Descriptor, len(overrides))
	for _, d := range overrides {
		byResource[d.Resource] = d
	}

	out := make([]Descriptor, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(base))
	for _, d := range base {
		seen[d.Resource] = true
		if o, ok := byResource[d.Resource]; ok {
			out = append(out, o)
			continue
		}
		out = append(out, d)
	}
	for _, d := range overrides {
		if !seen[d.Resource] {
			out = append(out, d)
		}
	}
	return out
}
