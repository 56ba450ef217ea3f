package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/compare"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDataConsistency checks that the refund workflow and the regime
// comparison agree on every ceiling they both compute
func TestDataConsistency(t *testing.T) {
	engine := calculation.NewEngine()
	cmpEngine := compare.NewCompareEngine(engine)

	months := map[domain.Regime]time.Time{
		domain.RegimeCurrent: {},
		domain.Regime202608:  time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		domain.Regime202708:  time.Date(2027, time.August, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, incomeValue := range []int64{150, 250, 400, 600, 700, 800, 1000, 1200, 1500, 2000} {
		income := money.NewManYenFromInt(incomeValue)
		// A co-payment of 300,000 yen implies a 1,000,000 yen total cost.
		set, err := cmpEngine.Compare(compare.CompareOptions{
			Income:           income,
			TotalMedicalCost: money.NewYen(1000000),
		})
		require.NoError(t, err)

		rows := append([]compare.ComparisonResult{*set.BaseResult}, set.AlternativeResults...)
		for _, row := range rows {
			require.True(t, row.Available)

			result, err := engine.Estimate(domain.RefundRequest{
				Category:    set.Category,
				Income:      &income,
				TargetMonth: months[row.Regime],
				Payments:    []domain.ProviderPayment{{Label: "病院", Amount: money.NewYen(300000)}},
			})
			require.NoError(t, err)

			assert.Equal(t, row.Regime, result.Regime)
			assert.True(t, row.Limit.Equal(result.SelfPaymentLimit),
				"income %d %s: comparison %s, refund %s", incomeValue, row.Regime, row.Limit, result.SelfPaymentLimit)
			wantRefund := money.MaxYen(money.ZeroYen(), money.NewYen(300000).Sub(result.SelfPaymentLimit))
			assert.True(t, result.Refund.Equal(wantRefund))
			if result.Tier != nil {
				assert.Equal(t, row.TierID, result.Tier.ID())
			}
		}
	}
}

// TestRefundNeverNegative sweeps payment amounts across every category
func TestRefundNeverNegative(t *testing.T) {
	engine := calculation.NewEngine()
	for _, category := range []domain.CategoryCode{domain.CategoryAHigh, domain.CategoryB, domain.CategoryC, domain.CategoryDLow, domain.CategoryETaxExempt} {
		for amount := int64(21000); amount <= 1000000; amount += 47000 {
			for _, manyTimes := range []bool{false, true} {
				result, err := engine.ComputeRefund(category, []domain.ProviderPayment{
					{Label: "a", Amount: money.NewYen(amount)},
					{Label: "b", Amount: money.NewYen(20999)},
				}, manyTimes)
				require.NoError(t, err)
				assert.False(t, result.Refund.IsNegative())
				assert.True(t, result.TotalEligibleCoPay.Equal(money.NewYen(amount)))
				assert.True(t, result.Refund.LessThan(result.TotalEligibleCoPay) || result.Refund.Equal(result.TotalEligibleCoPay))
			}
		}
	}
}

// TestTablesRoundTrip exports the built-in tables and checks an engine over
// the re-imported file produces identical estimates
func TestTablesRoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, parser.SaveTablesToFile(calculation.DefaultTables(), path))

	tables, err := parser.LoadTablesFromFile(path)
	require.NoError(t, err)

	builtIn := calculation.NewEngine()
	reloaded := calculation.NewEngineWithTables(tables)

	for _, file := range []string{"scenario_c_high.yaml", "scenario_2026_d.yaml", "scenario_2027_c2.yaml", "scenario_2027_a3.yaml"} {
		req, err := parser.LoadFromFile(fixture(file))
		require.NoError(t, err)

		want, err := builtIn.Estimate(*req)
		require.NoError(t, err)
		got, err := reloaded.Estimate(*req)
		require.NoError(t, err)

		assert.True(t, want.SelfPaymentLimit.Equal(got.SelfPaymentLimit), file)
		assert.True(t, want.Refund.Equal(got.Refund), file)
	}
}
