package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err)
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidFile, []byte("payments: [unclosed"), 0644))

	parser := NewInputParser()
	req, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err)
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_Category(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile("testdata/request_c.yaml")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryC, req.Category)
	assert.False(t, req.CategoryFromIncome)
	assert.Nil(t, req.Income)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), req.TargetMonth)
	require.Len(t, req.Payments, 2)
	assert.Equal(t, "市民病院", req.Payments[0].Label)
	assert.True(t, req.Payments[1].Amount.Equal(money.NewYen(15000)))
}

func TestInputParser_LoadFromFile_IncomeOnly(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile("testdata/request_income_only.yaml")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryC, req.Category, "category is classified from income")
	assert.True(t, req.CategoryFromIncome)
	require.NotNil(t, req.Income)
	assert.Equal(t, "600", req.Income.String())
	assert.Equal(t, "医療機関1", req.Payments[0].Label)
}

func TestInputParser_Parse_DropsZeroPayments(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.Parse([]byte("category: C\npayments:\n  - amount: 0\n  - amount: 50000\n  - label: 薬局\n    amount: 0\n"))
	require.NoError(t, err)
	require.Len(t, req.Payments, 1)
	assert.Equal(t, "医療機関2", req.Payments[0].Label)
	assert.True(t, req.Payments[0].Amount.Equal(money.NewYen(50000)))
}

func TestInputParser_Parse_Errors(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		doc     string
		wantErr error
		message string
	}{
		{"no category or income", "payments: [{amount: 30000}]", nil, "either category or income"},
		{"unknown category", "category: Z\npayments: [{amount: 30000}]", domain.ErrUnknownCategory, ""},
		{"no payments", "category: C\n", domain.ErrEmptyInput, ""},
		{"only zero payments", "category: C\npayments: [{amount: 0}, {label: 薬局, amount: 0}]", domain.ErrEmptyInput, ""},
		{"negative income", "income: -5\npayments: [{amount: 30000}]", domain.ErrInvalidIncome, ""},
		{"negative payment", "category: C\npayments: [{amount: -1}]", nil, "cannot be negative"},
		{"bad month", "category: C\ntarget_month: 2026-13\npayments: [{amount: 30000}]", nil, "invalid month"},
		{"tiered month without income", "category: C\ntarget_month: 2027-08\npayments: [{amount: 30000}]", domain.ErrTierRequired, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parser.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, req)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestInputParser_LoadTablesFromFile(t *testing.T) {
	parser := NewInputParser()

	tables, err := parser.LoadTablesFromFile("testdata/tables_custom.yaml")
	require.NoError(t, err)

	c, ok := tables.Category(domain.RegimeCurrent, domain.CategoryC)
	require.True(t, ok)
	assert.True(t, c.BaseAmount.Equal(money.NewYen(80100)))
	assert.Equal(t, "0.01", c.Rate.String())

	tiers := tables.Tiers(domain.Regime202708, domain.CategoryDLow)
	require.Len(t, tiers, 2)
	assert.Nil(t, tiers[0].Lower)
	assert.True(t, tiers[0].Parameters.AnnualCap.Equal(money.NewYen(410000)))
	assert.Equal(t, "test tables", tables.Metadata().Description)

	engine := calculation.NewEngineWithTables(tables)
	result, err := engine.ComputeRefund(domain.CategoryDLow, []domain.ProviderPayment{{Amount: money.NewYen(60000)}}, false)
	require.NoError(t, err)
	assert.True(t, result.Refund.Equal(money.NewYen(2400)))
}

func TestInputParser_LoadTablesFromFile_Gap(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadTablesFromFile("testdata/tables_gap.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not contiguous")
}

func TestValidateTables(t *testing.T) {
	parser := NewInputParser()

	t.Run("built-in tables are valid", func(t *testing.T) {
		doc := calculation.DefaultTablesDocument()
		assert.NoError(t, parser.ValidateTables(&doc))
	})

	t.Run("exported tables round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tables.yaml")
		require.NoError(t, parser.SaveTablesToFile(calculation.DefaultTables(), path))

		loaded, err := parser.LoadTablesFromFile(path)
		require.NoError(t, err)
		tier := loaded.Tiers(domain.Regime202708, domain.CategoryAHigh)
		require.Len(t, tier, 3)
		assert.Nil(t, tier[2].Upper)
		assert.True(t, tier[2].Parameters.BaseAmount.Equal(money.NewYen(342000)))
	})

	t.Run("rate without threshold", func(t *testing.T) {
		doc := domain.TablesDocument{Regimes: []domain.RegimeSection{{
			Regime: domain.RegimeCurrent,
			Categories: map[domain.CategoryCode]domain.CategoryParameters{
				domain.CategoryC: {BaseAmount: money.NewYen(80100), Rate: calculation.DefaultTablesDocument().Regimes[0].Categories[domain.CategoryC].Rate},
			},
		}}}
		err := parser.ValidateTables(&doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "threshold")
	})

	t.Run("tiers under unsplit regime", func(t *testing.T) {
		doc := domain.TablesDocument{Regimes: []domain.RegimeSection{{
			Regime: domain.Regime202608,
			Tiers:  []domain.IncomeTier{{Category: domain.CategoryC, Rank: 1}},
		}}}
		assert.Error(t, parser.ValidateTables(&doc))
	})

	t.Run("tiered tax exempt", func(t *testing.T) {
		doc := domain.TablesDocument{Regimes: []domain.RegimeSection{{
			Regime: domain.Regime202708,
			Tiers:  []domain.IncomeTier{{Category: domain.CategoryETaxExempt, Rank: 1}},
		}}}
		assert.Error(t, parser.ValidateTables(&doc))
	})

	t.Run("top tier must be open", func(t *testing.T) {
		lower, upper := money.NewManYenFromInt(1160), money.NewManYenFromInt(2000)
		doc := domain.TablesDocument{Regimes: []domain.RegimeSection{{
			Regime: domain.Regime202708,
			Tiers:  []domain.IncomeTier{{Category: domain.CategoryAHigh, Rank: 1, Lower: &lower, Upper: &upper}},
		}}}
		err := parser.ValidateTables(&doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must end at unbounded")
	})

	t.Run("bounded band cannot be open below", func(t *testing.T) {
		upper := money.NewManYenFromInt(770)
		doc := domain.TablesDocument{Regimes: []domain.RegimeSection{{
			Regime: domain.Regime202708,
			Tiers:  []domain.IncomeTier{{Category: domain.CategoryC, Rank: 1, Upper: &upper}},
		}}}
		err := parser.ValidateTables(&doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must start at 370")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Error(t, parser.ValidateTables(&domain.TablesDocument{}))
	})
}
