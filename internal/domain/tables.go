package domain

import (
	"fmt"
	"sort"
)

// TablesDocument is the on-disk (YAML) shape of a complete parameter set.
// It is converted into ParameterTables once and never consulted again.
type TablesDocument struct {
	Metadata TablesMetadata  `yaml:"metadata" json:"metadata"`
	Regimes  []RegimeSection `yaml:"regimes" json:"regimes"`
}

// TablesMetadata describes where the numbers come from
type TablesMetadata struct {
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
	Source      string `yaml:"source,omitempty" json:"source,omitempty"`
}

// RegimeSection holds the rows of one regime. Unsplit regimes fill
// Categories; the subdivided regime fills Tiers.
type RegimeSection struct {
	Regime     Regime                              `yaml:"regime" json:"regime"`
	Categories map[CategoryCode]CategoryParameters `yaml:"categories,omitempty" json:"categories,omitempty"`
	Tiers      []IncomeTier                        `yaml:"tiers,omitempty" json:"tiers,omitempty"`
}

// ParameterTables is an immutable, validated parameter set. All accessors
// return copies, so a table in use can never be patched in place; a new
// parameter set is built and swapped in wholesale instead.
type ParameterTables struct {
	metadata   TablesMetadata
	categories map[Regime]map[CategoryCode]CategoryParameters
	tiers      map[Regime]map[CategoryCode][]IncomeTier
}

// NewParameterTables builds tables from a document. Structural checks live
// in config.ValidateTables; this only rejects what would make lookups ambiguous.
func NewParameterTables(doc TablesDocument) (*ParameterTables, error) {
	t := &ParameterTables{
		metadata:   doc.Metadata,
		categories: make(map[Regime]map[CategoryCode]CategoryParameters),
		tiers:      make(map[Regime]map[CategoryCode][]IncomeTier),
	}

	for _, section := range doc.Regimes {
		if !section.Regime.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRegime, section.Regime)
		}
		if _, dup := t.categories[section.Regime]; dup {
			return nil, fmt.Errorf("regime %s defined more than once", section.Regime)
		}

		cats := make(map[CategoryCode]CategoryParameters, len(section.Categories))
		for code, params := range section.Categories {
			cats[code] = params
		}
		t.categories[section.Regime] = cats

		byCategory := make(map[CategoryCode][]IncomeTier)
		for _, tier := range section.Tiers {
			byCategory[tier.Category] = append(byCategory[tier.Category], cloneTier(tier))
		}
		for code := range byCategory {
			tiers := byCategory[code]
			sort.Slice(tiers, func(i, j int) bool { return tiers[i].Rank < tiers[j].Rank })
		}
		t.tiers[section.Regime] = byCategory
	}

	return t, nil
}

// Metadata returns the descriptive header of the tables
func (t *ParameterTables) Metadata() TablesMetadata {
	return t.metadata
}

// Category returns the row for a whole category under a regime
func (t *ParameterTables) Category(r Regime, c CategoryCode) (CategoryParameters, bool) {
	params, ok := t.categories[r][c]
	return params, ok
}

// Tiers returns the income tiers of a category, lowest band first
func (t *ParameterTables) Tiers(r Regime, c CategoryCode) []IncomeTier {
	src := t.tiers[r][c]
	out := make([]IncomeTier, len(src))
	for i, tier := range src {
		out[i] = cloneTier(tier)
	}
	return out
}

// HasRegime reports whether the tables define a regime at all
func (t *ParameterTables) HasRegime(r Regime) bool {
	_, ok := t.categories[r]
	return ok
}

// Document converts the tables back into their YAML shape
func (t *ParameterTables) Document() TablesDocument {
	doc := TablesDocument{Metadata: t.metadata}
	for _, r := range AllRegimes {
		if !t.HasRegime(r) {
			continue
		}
		section := RegimeSection{Regime: r}
		if cats := t.categories[r]; len(cats) > 0 {
			section.Categories = make(map[CategoryCode]CategoryParameters, len(cats))
			for code, params := range cats {
				section.Categories[code] = params
			}
		}
		for _, code := range AllCategories {
			section.Tiers = append(section.Tiers, t.Tiers(r, code)...)
		}
		doc.Regimes = append(doc.Regimes, section)
	}
	return doc
}

func cloneTier(tier IncomeTier) IncomeTier {
	out := tier
	if tier.Lower != nil {
		lower := *tier.Lower
		out.Lower = &lower
	}
	if tier.Upper != nil {
		upper := *tier.Upper
		out.Upper = &upper
	}
	return out
}
