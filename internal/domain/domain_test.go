package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manYenPtr(v int64) *money.ManYen {
	m := money.NewManYenFromInt(v)
	return &m
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected CategoryCode
	}{
		{"A", CategoryAHigh},
		{"a-high", CategoryAHigh},
		{"ア", CategoryAHigh},
		{" b ", CategoryB},
		{"ウ", CategoryC},
		{"d-low", CategoryDLow},
		{"エ", CategoryDLow},
		{"tax-exempt", CategoryETaxExempt},
		{"オ", CategoryETaxExempt},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseCategory("Z")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestCategorySeverityOrdering(t *testing.T) {
	assert.Greater(t, CategoryAHigh.Severity(), CategoryB.Severity())
	assert.Greater(t, CategoryB.Severity(), CategoryC.Severity())
	assert.Greater(t, CategoryC.Severity(), CategoryDLow.Severity())
	assert.Greater(t, CategoryDLow.Severity(), CategoryETaxExempt.Severity())
	assert.False(t, CategoryCode("X").Valid())
	assert.Equal(t, "ウ", CategoryC.Label())
}

func TestRegimeForMonth(t *testing.T) {
	tests := []struct {
		month    time.Time
		expected Regime
	}{
		{time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), RegimeCurrent},
		{time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC), RegimeCurrent},
		{time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), Regime202608},
		{time.Date(2027, time.July, 1, 0, 0, 0, 0, time.UTC), Regime202608},
		{time.Date(2027, time.August, 1, 0, 0, 0, 0, time.UTC), Regime202708},
		{time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), Regime202708},
	}

	for _, tt := range tests {
		t.Run(tt.month.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.expected, RegimeForMonth(tt.month))
		})
	}
}

func TestParseRegime(t *testing.T) {
	r, err := ParseRegime("R9.8")
	require.NoError(t, err)
	assert.Equal(t, Regime202708, r)

	r, err = ParseRegime("現行")
	require.NoError(t, err)
	assert.Equal(t, RegimeCurrent, r)

	_, err = ParseRegime("2030-01")
	assert.True(t, errors.Is(err, ErrUnknownRegime))
}

func TestIncomeTierContains(t *testing.T) {
	tier := IncomeTier{Category: CategoryC, Rank: 2, Lower: manYenPtr(510), Upper: manYenPtr(650)}

	assert.True(t, tier.Contains(money.NewManYenFromInt(510)), "lower bound is inclusive")
	assert.True(t, tier.Contains(money.ManYen{Decimal: decimal.RequireFromString("649.999")}))
	assert.False(t, tier.Contains(money.NewManYenFromInt(650)), "upper bound is exclusive")
	assert.False(t, tier.Contains(money.ManYen{Decimal: decimal.RequireFromString("509.5")}))
	assert.Equal(t, "C2", tier.ID())

	open := IncomeTier{Category: CategoryDLow, Rank: 1, Upper: manYenPtr(200)}
	assert.True(t, open.Contains(money.NewManYenFromInt(-5)))
}

func TestCategoryParametersValidate(t *testing.T) {
	valid := CategoryParameters{
		BaseAmount:      money.NewYen(80100),
		Threshold:       money.NewYen(267000),
		Rate:            decimal.NewFromFloat(0.01),
		ManyTimesAmount: money.NewYen(44400),
	}
	assert.NoError(t, valid.Validate())

	missingThreshold := valid
	missingThreshold.Threshold = money.ZeroYen()
	assert.Error(t, missingThreshold.Validate())

	flat := CategoryParameters{BaseAmount: money.NewYen(57600), ManyTimesAmount: money.NewYen(44400)}
	assert.NoError(t, flat.Validate())
	assert.False(t, flat.HasMarginalRate())
}

func TestParameterTablesAreCopies(t *testing.T) {
	doc := TablesDocument{
		Regimes: []RegimeSection{
			{
				Regime: Regime202708,
				Tiers: []IncomeTier{
					{Category: CategoryDLow, Rank: 2, Lower: manYenPtr(200), Upper: manYenPtr(370)},
					{Category: CategoryDLow, Rank: 1, Upper: manYenPtr(200)},
				},
			},
		},
	}
	tables, err := NewParameterTables(doc)
	require.NoError(t, err)

	tiers := tables.Tiers(Regime202708, CategoryDLow)
	require.Len(t, tiers, 2)
	assert.Equal(t, 1, tiers[0].Rank, "tiers are ordered lowest band first")

	*tiers[0].Upper = money.NewManYenFromInt(999)
	again := tables.Tiers(Regime202708, CategoryDLow)
	assert.Equal(t, "200", again[0].Upper.String(), "mutating a returned tier must not change the tables")
}

func TestNewParameterTablesRejectsDuplicates(t *testing.T) {
	doc := TablesDocument{Regimes: []RegimeSection{{Regime: RegimeCurrent}, {Regime: RegimeCurrent}}}
	_, err := NewParameterTables(doc)
	assert.Error(t, err)

	_, err = NewParameterTables(TablesDocument{Regimes: []RegimeSection{{Regime: "1999-01"}}})
	assert.True(t, errors.Is(err, ErrUnknownRegime))
}

func TestInputError(t *testing.T) {
	err := NewInputError(ErrNoEligiblePayments, "2 payments below minimum")
	assert.True(t, errors.Is(err, ErrNoEligiblePayments))
	assert.False(t, errors.Is(err, ErrEmptyInput))
	assert.True(t, IsInputError(err))
	assert.Contains(t, err.Error(), "2 payments below minimum")
}
