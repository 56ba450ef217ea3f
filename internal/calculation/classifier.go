package calculation

import (
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// Lower bounds of the income bands, in man-yen. Each bound is inclusive.
var (
	categoryALowerBound = money.NewManYenFromInt(1160)
	categoryBLowerBound = money.NewManYenFromInt(770)
	categoryCLowerBound = money.NewManYenFromInt(370)
)

// Classify maps an annual income in man-yen to its income category.
//
// Zero and negative incomes fall into the lowest taxable category; callers
// that want to reject them must validate first (see config.ParseIncome).
// The tax-exempt category is never returned since income alone cannot
// establish residence-tax exemption.
func Classify(income money.ManYen) domain.CategoryCode {
	switch {
	case income.GreaterThanOrEqual(categoryALowerBound):
		return domain.CategoryAHigh
	case income.GreaterThanOrEqual(categoryBLowerBound):
		return domain.CategoryB
	case income.GreaterThanOrEqual(categoryCLowerBound):
		return domain.CategoryC
	default:
		return domain.CategoryDLow
	}
}

// CategoryBand returns the [lower, upper) income band of a category. A nil
// bound is unbounded. ok is false for the tax-exempt category, which has no
// income band.
func CategoryBand(c domain.CategoryCode) (lower, upper *money.ManYen, ok bool) {
	a, b, cc := categoryALowerBound, categoryBLowerBound, categoryCLowerBound
	switch c {
	case domain.CategoryAHigh:
		return &a, nil, true
	case domain.CategoryB:
		return &b, &a, true
	case domain.CategoryC:
		return &cc, &b, true
	case domain.CategoryDLow:
		return nil, &cc, true
	default:
		return nil, nil, false
	}
}

// selectTier returns the tier containing income. Tiers must be ordered
// lowest band first; an income below every band lands in the first tier.
func selectTier(tiers []domain.IncomeTier, income money.ManYen) (domain.IncomeTier, bool) {
	if len(tiers) == 0 {
		return domain.IncomeTier{}, false
	}
	for _, t := range tiers {
		if t.Contains(income) {
			return t, true
		}
	}
	if tiers[0].Lower != nil && income.LessThan(*tiers[0].Lower) {
		return tiers[0], true
	}
	// above the top band: the highest tier is the only sensible answer
	return tiers[len(tiers)-1], true
}
