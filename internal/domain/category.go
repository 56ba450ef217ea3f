package domain

import (
	"fmt"
	"strings"
)

// CategoryCode is the income-based cost-sharing category of a household.
// It is derived from annual income only and never changes once computed.
type CategoryCode string

const (
	CategoryAHigh      CategoryCode = "A" // ア: income about 11.6M yen and above
	CategoryB          CategoryCode = "B" // イ: about 7.7M to 11.6M yen
	CategoryC          CategoryCode = "C" // ウ: about 3.7M to 7.7M yen
	CategoryDLow       CategoryCode = "D" // エ: below about 3.7M yen
	CategoryETaxExempt CategoryCode = "E" // オ: residence-tax-exempt household
)

// AllCategories lists every category from highest to lowest income.
var AllCategories = []CategoryCode{
	CategoryAHigh,
	CategoryB,
	CategoryC,
	CategoryDLow,
	CategoryETaxExempt,
}

// Label returns the katakana label used on insurer documents
func (c CategoryCode) Label() string {
	switch c {
	case CategoryAHigh:
		return "ア"
	case CategoryB:
		return "イ"
	case CategoryC:
		return "ウ"
	case CategoryDLow:
		return "エ"
	case CategoryETaxExempt:
		return "オ"
	default:
		return "?"
	}
}

// Description returns the income band a category covers
func (c CategoryCode) Description() string {
	switch c {
	case CategoryAHigh:
		return "ア（年収約1,160万円以上）"
	case CategoryB:
		return "イ（年収約770万円〜1,160万円）"
	case CategoryC:
		return "ウ（年収約370万円〜770万円）"
	case CategoryDLow:
		return "エ（年収約370万円未満）"
	case CategoryETaxExempt:
		return "オ（住民税非課税世帯）"
	default:
		return string(c)
	}
}

// Severity orders categories by income; A is highest. E sorts below D.
func (c CategoryCode) Severity() int {
	for i, cat := range AllCategories {
		if cat == c {
			return len(AllCategories) - i
		}
	}
	return 0
}

// Valid reports whether c is one of the known categories
func (c CategoryCode) Valid() bool {
	return c.Severity() > 0
}

var categoryAliases = map[string]CategoryCode{
	"a":            CategoryAHigh,
	"a-high":       CategoryAHigh,
	"ア":            CategoryAHigh,
	"b":            CategoryB,
	"イ":            CategoryB,
	"c":            CategoryC,
	"ウ":            CategoryC,
	"d":            CategoryDLow,
	"d-low":        CategoryDLow,
	"エ":            CategoryDLow,
	"e":            CategoryETaxExempt,
	"e-tax-exempt": CategoryETaxExempt,
	"tax-exempt":   CategoryETaxExempt,
	"オ":            CategoryETaxExempt,
}

// ParseCategory accepts a Latin code, a katakana label or a descriptive alias
func ParseCategory(s string) (CategoryCode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// UnmarshalText lets categories be written as any accepted alias in YAML
func (c *CategoryCode) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
