package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"gopkg.in/yaml.v3"
)

// LoadTablesFromFile loads a replacement parameter set from YAML. The result
// replaces the built-in tables wholesale; partial overrides are not merged.
func (ip *InputParser) LoadTablesFromFile(filename string) (*domain.ParameterTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc domain.TablesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateTables(&doc); err != nil {
		return nil, fmt.Errorf("tables validation failed: %w", err)
	}

	return domain.NewParameterTables(doc)
}

// SaveTablesToFile writes tables in the same YAML shape LoadTablesFromFile reads
func (ip *InputParser) SaveTablesToFile(tables *domain.ParameterTables, filename string) error {
	data, err := MarshalTables(tables)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// MarshalTables renders tables as YAML
func MarshalTables(tables *domain.ParameterTables) ([]byte, error) {
	data, err := yaml.Marshal(tables.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tables: %w", err)
	}
	return data, nil
}

// ValidateTables checks a parameter document for structural consistency
func (ip *InputParser) ValidateTables(doc *domain.TablesDocument) error {
	if len(doc.Regimes) == 0 {
		return fmt.Errorf("no regimes defined")
	}

	seen := make(map[domain.Regime]bool)
	for _, section := range doc.Regimes {
		if !section.Regime.Valid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownRegime, section.Regime)
		}
		if seen[section.Regime] {
			return fmt.Errorf("regime %s defined more than once", section.Regime)
		}
		seen[section.Regime] = true

		if err := ip.validateRegimeSection(section); err != nil {
			return fmt.Errorf("regime %s: %w", section.Regime, err)
		}
	}
	return nil
}

func (ip *InputParser) validateRegimeSection(section domain.RegimeSection) error {
	if section.Regime.Subdivided() {
		if len(section.Categories) > 0 {
			return fmt.Errorf("categories must be split into tiers")
		}
		if len(section.Tiers) == 0 {
			return fmt.Errorf("tiers are required")
		}
	} else if len(section.Tiers) > 0 {
		return fmt.Errorf("tiers are not allowed")
	}

	for code, params := range section.Categories {
		if !code.Valid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, code)
		}
		if err := params.Validate(); err != nil {
			return fmt.Errorf("category %s: %w", code, err)
		}
	}

	byCategory := make(map[domain.CategoryCode][]domain.IncomeTier)
	for _, t := range section.Tiers {
		if !t.Category.Valid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, t.Category)
		}
		if err := t.Parameters.Validate(); err != nil {
			return fmt.Errorf("tier %s: %w", t.ID(), err)
		}
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	for code, tiers := range byCategory {
		if err := validateTierChain(code, tiers); err != nil {
			return err
		}
	}
	return nil
}

// validateTierChain checks that a category's tiers are contiguous,
// non-overlapping and span the category's income band.
func validateTierChain(code domain.CategoryCode, tiers []domain.IncomeTier) error {
	lower, upper, ok := calculation.CategoryBand(code)
	if !ok {
		return fmt.Errorf("category %s has no income band and cannot be tiered", code)
	}

	sorted := make([]domain.IncomeTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	for i, t := range sorted {
		if t.Rank != i+1 {
			return fmt.Errorf("category %s: tier ranks must run 1..%d, found %d", code, len(sorted), t.Rank)
		}
		if t.Lower != nil && t.Upper != nil && !t.Lower.LessThan(*t.Upper) {
			return fmt.Errorf("tier %s: lower bound %s is not below upper bound %s", t.ID(), t.Lower, t.Upper)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if prev.Upper == nil || t.Lower == nil || !prev.Upper.Equal(*t.Lower) {
			return fmt.Errorf("tiers %s and %s are not contiguous", prev.ID(), t.ID())
		}
	}

	first, last := sorted[0], sorted[len(sorted)-1]
	if lower != nil && (first.Lower == nil || !first.Lower.Equal(*lower)) {
		return fmt.Errorf("tier %s must start at %s", first.ID(), lower)
	}
	if !sameBound(last.Upper, upper) {
		return fmt.Errorf("tier %s must end at %s", last.ID(), boundString(upper))
	}
	return nil
}

func sameBound(a, b *money.ManYen) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func boundString(b *money.ManYen) string {
	if b == nil {
		return "unbounded"
	}
	return b.String()
}
