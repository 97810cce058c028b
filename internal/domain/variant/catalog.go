package variant

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed variants.yaml
var defaultCatalogYAML []byte

type minutesGuideline struct {
	Seasons    []string `yaml:"seasons"`
	MinMinutes int      `yaml:"min_minutes"`
}

type catalogFile struct {
	Columns    Columns            `yaml:"columns"`
	Guidelines []minutesGuideline `yaml:"minutes_guidelines"`
	Variants   []Variant          `yaml:"variants"`
}

// Catalog is the immutable set of variants known to the service.
type Catalog struct {
	variants   []Variant
	byID       map[string]int
	guidelines map[string]int
}

// DefaultCatalog parses the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode variant catalog: %w", err)
	}
	if len(file.Variants) == 0 {
		return nil, fmt.Errorf("variant catalog is empty")
	}

	c := &Catalog{
		variants:   make([]Variant, 0, len(file.Variants)),
		byID:       make(map[string]int, len(file.Variants)),
		guidelines: make(map[string]int),
	}
	for _, v := range file.Variants {
		v.Columns = file.Columns
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate variant id %q", v.ID)
		}
		c.byID[v.ID] = len(c.variants)
		c.variants = append(c.variants, v)
	}
	for _, g := range file.Guidelines {
		for _, s := range g.Seasons {
			c.guidelines[strings.TrimSpace(s)] = g.MinMinutes
		}
	}
	return c, nil
}

// List returns the variants in catalog order.
func (c *Catalog) List() []Variant {
	return append([]Variant(nil), c.variants...)
}

func (c *Catalog) Get(id string) (Variant, error) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %s", ErrUnknownVariant, id)
	}
	return c.variants[idx], nil
}

// RecommendedMinMinutes returns the advised minimum playing time for a
// season label ("24/25" and "2024" -> 800, "2025" -> 500).
func (c *Catalog) RecommendedMinMinutes(season string) (int, bool) {
	v, ok := c.guidelines[strings.TrimSpace(season)]
	return v, ok
}
