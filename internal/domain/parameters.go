package domain

import (
	"fmt"

	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/shopspring/decimal"
)

// CategoryParameters holds the self-payment limit formula for one category
// (or one income tier) under one regime.
//
// When Rate is positive the limit is BaseAmount + (cost - Threshold) * Rate
// for costs above Threshold. When Rate is zero BaseAmount is the flat limit.
type CategoryParameters struct {
	BaseAmount      money.Yen       `yaml:"base_amount" json:"baseAmount"`
	Threshold       money.Yen       `yaml:"threshold" json:"threshold"`
	Rate            decimal.Decimal `yaml:"rate" json:"rate"`
	ManyTimesAmount money.Yen       `yaml:"many_times_amount" json:"manyTimesAmount"`
	// AnnualCap is informational only; zero means no annual cap is published.
	AnnualCap money.Yen `yaml:"annual_cap,omitempty" json:"annualCap"`
}

// HasMarginalRate reports whether the 1% excess formula applies
func (p CategoryParameters) HasMarginalRate() bool {
	return p.Rate.IsPositive()
}

// HasAnnualCap reports whether an annual aggregate cap is published
func (p CategoryParameters) HasAnnualCap() bool {
	return p.AnnualCap.IsPositive()
}

// Validate checks the rate/threshold invariant
func (p CategoryParameters) Validate() error {
	if p.BaseAmount.IsNegative() || p.ManyTimesAmount.IsNegative() || p.AnnualCap.IsNegative() {
		return fmt.Errorf("amounts cannot be negative")
	}
	if p.Rate.IsNegative() || p.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("rate must be in [0, 1), got %s", p.Rate.String())
	}
	if p.HasMarginalRate() && !p.Threshold.IsPositive() {
		return fmt.Errorf("a positive rate requires a positive threshold")
	}
	return nil
}

// IncomeTier is a narrower income band inside a category (2027-08 regime only).
// Lower is inclusive and Upper exclusive; nil means unbounded on that side.
type IncomeTier struct {
	Category   CategoryCode       `yaml:"category" json:"category"`
	Rank       int                `yaml:"rank" json:"rank"`
	RangeLabel string             `yaml:"range_label" json:"rangeLabel"`
	Lower      *money.ManYen      `yaml:"lower,omitempty" json:"lower,omitempty"`
	Upper      *money.ManYen      `yaml:"upper,omitempty" json:"upper,omitempty"`
	Parameters CategoryParameters `yaml:"parameters" json:"parameters"`
}

// Contains reports whether income falls inside [Lower, Upper)
func (t IncomeTier) Contains(income money.ManYen) bool {
	if t.Lower != nil && income.LessThan(*t.Lower) {
		return false
	}
	if t.Upper != nil && !income.LessThan(*t.Upper) {
		return false
	}
	return true
}

// ID returns a short identifier such as "C2"
func (t IncomeTier) ID() string {
	return fmt.Sprintf("%s%d", t.Category, t.Rank)
}

// Bracket selects a parameter row: either a whole category or an income tier.
// It is sealed; CategoryBracket and TierBracket are the only implementations.
type Bracket interface {
	bracket()
	String() string
}

// CategoryBracket selects the row for a whole category
type CategoryBracket struct {
	Category CategoryCode
}

func (CategoryBracket) bracket() {}

func (b CategoryBracket) String() string { return "category " + string(b.Category) }

// TierBracket selects the row for one income tier
type TierBracket struct {
	Tier IncomeTier
}

func (TierBracket) bracket() {}

func (b TierBracket) String() string { return "tier " + b.Tier.ID() }

// ForCategory returns a bracket selecting a whole category
func ForCategory(c CategoryCode) Bracket { return CategoryBracket{Category: c} }

// ForTier returns a bracket selecting an income tier
func ForTier(t IncomeTier) Bracket { return TierBracket{Tier: t} }
