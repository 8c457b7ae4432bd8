package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type CatalogEntry struct {
	Kind  Kind   `yaml:"kind" json:"kind"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
	// Text is the default display/placeholder text for new items. Empty means "use the kind".
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Catalog is the palette: the static ordered list of kinds that can be placed.
type Catalog struct {
	Entries []CatalogEntry `yaml:"kinds" json:"kinds"`
}

func DefaultCatalog() Catalog {
	return Catalog{Entries: []CatalogEntry{
		{Kind: KindHeading, Label: "Heading"},
		{Kind: KindSubheading, Label: "Subheading"},
		{Kind: KindInput, Label: "Input"},
		{Kind: KindTextarea, Label: "Textarea"},
		{Kind: KindButton, Label: "Button"},
	}}
}

func (c Catalog) Kinds() []Kind {
	out := make([]Kind, 0, len(c.Entries))
	for _, e := range c.Entries {
		out = append(out, e.Kind)
	}
	return out
}

func (c Catalog) Lookup(kind Kind) (CatalogEntry, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(string(kind))))
	for _, e := range c.Entries {
		if e.Kind == k {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// NewItem builds a FormItem for a palette entry, applying the entry's default text.
func (c Catalog) NewItem(kind Kind) FormItem {
	it := NewFormItem(kind)
	if e, ok := c.Lookup(kind); ok && strings.TrimSpace(e.Text) != "" {
		it.Text = e.Text
	}
	return it
}

// LoadCatalogYAML reads a catalog file. A missing file yields the default catalog.
func LoadCatalogYAML(path string) (Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultCatalog(), nil
		}
		return Catalog{}, err
	}
	return ParseCatalogYAML(b)
}

func ParseCatalogYAML(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	if len(c.Entries) == 0 {
		return Catalog{}, errors.New("catalog: no kinds")
	}
	seen := map[Kind]bool{}
	for i := range c.Entries {
		e := &c.Entries[i]
		e.Kind = Kind(strings.ToLower(strings.TrimSpace(string(e.Kind))))
		if e.Kind == "" {
			return Catalog{}, fmt.Errorf("catalog: entry %d: missing kind", i)
		}
		if seen[e.Kind] {
			return Catalog{}, fmt.Errorf("catalog: duplicate kind %q", e.Kind)
		}
		seen[e.Kind] = true
	}
	return c, nil
}
