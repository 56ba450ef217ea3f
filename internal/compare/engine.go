package compare

import (
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// CompareEngine orchestrates the regime comparison for a household
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Income money.ManYen
	// TaxExempt selects the tax-exempt category regardless of income.
	TaxExempt bool
	// TotalMedicalCost is the 10/10ths monthly cost the ceilings are evaluated at.
	TotalMedicalCost money.Yen
}

// Compare classifies the household and compares every regime against the current one
func (ce *CompareEngine) Compare(options CompareOptions) (*ComparisonSet, error) {
	var (
		cmp *domain.RegimeComparison
		err error
	)
	if options.TaxExempt {
		cmp, err = ce.CalcEngine.CompareCategory(domain.CategoryETaxExempt, options.Income, options.TotalMedicalCost)
	} else {
		cmp, err = ce.CalcEngine.CompareRegimes(options.Income, options.TotalMedicalCost)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compare regimes: %w", err)
	}

	return ce.Build(cmp)
}

// Build turns an engine comparison into a ComparisonSet with deltas and notes
func (ce *CompareEngine) Build(cmp *domain.RegimeComparison) (*ComparisonSet, error) {
	baseRow, ok := cmp.ForRegime(domain.RegimeCurrent)
	if !ok {
		return nil, fmt.Errorf("comparison has no %s regime", domain.RegimeCurrent)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseRow)

	alternatives := []ComparisonResult{}
	for _, row := range cmp.Regimes {
		if row.Regime == domain.RegimeCurrent {
			continue
		}
		alt := ce.MetricsCalculator.CalculateMetrics(row)
		alt = ce.MetricsCalculator.CalculateComparison(alt, baseResult)
		alternatives = append(alternatives, alt)
	}

	set := &ComparisonSet{
		Income:             cmp.Income,
		Category:           cmp.Category,
		CategoryLabel:      cmp.Category.Description(),
		TotalMedicalCost:   cmp.TotalMedicalCost,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		TablesSource:       ce.CalcEngine.Tables.Metadata().Source,
	}
	set.Recommendations = GenerateRecommendations(set)

	return set, nil
}
