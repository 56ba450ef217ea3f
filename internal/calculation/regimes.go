package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// CompareRegimes classifies income once and returns the ceiling picture for
// that category under every regime, evaluated at totalMedicalCost.
func (e *Engine) CompareRegimes(income money.ManYen, totalMedicalCost money.Yen) (*domain.RegimeComparison, error) {
	return e.CompareCategory(Classify(income), income, totalMedicalCost)
}

// CompareCategory is CompareRegimes for an explicitly chosen category, used
// for the tax-exempt category which income alone never selects. Regimes with
// no published row come back with Available set to false.
func (e *Engine) CompareCategory(category domain.CategoryCode, income money.ManYen, totalMedicalCost money.Yen) (*domain.RegimeComparison, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	cmp := &domain.RegimeComparison{
		Income:           &income,
		Category:         category,
		TotalMedicalCost: totalMedicalCost,
		Regimes:          make([]domain.RegimeLimit, 0, len(domain.AllRegimes)),
	}

	for _, regime := range domain.AllRegimes {
		row := domain.RegimeLimit{
			Regime:        regime,
			EffectiveFrom: regime.EffectiveFrom(),
		}

		params, tier, err := e.resolve(regime, category, &income)
		switch {
		case errors.Is(err, domain.ErrParametersUnavailable):
			e.Logger.Debugf("no %s parameters under %s", category, regime)
			cmp.Regimes = append(cmp.Regimes, row)
			continue
		case err != nil:
			return nil, fmt.Errorf("regime %s: %w", regime, err)
		}

		row.Available = true
		row.Tier = tier
		row.Parameters = params
		row.Limit = ComputeLimit(params, totalMedicalCost, false)
		row.ManyTimesLimit = ComputeLimit(params, totalMedicalCost, true)
		row.AnnualCap = params.AnnualCap
		cmp.Regimes = append(cmp.Regimes, row)
	}

	return cmp, nil
}
