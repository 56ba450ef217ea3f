package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// Engine answers classification, limit and refund questions against one
// immutable set of parameter tables. It holds no per-call state and is safe
// for concurrent use.
type Engine struct {
	Tables *domain.ParameterTables
	Logger Logger
}

// NewEngine creates an engine over the built-in tables
func NewEngine() *Engine {
	return NewEngineWithTables(DefaultTables())
}

// NewEngineWithTables creates an engine over a validated table set
func NewEngineWithTables(tables *domain.ParameterTables) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Engine{
		Tables: tables,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// GetParameters looks up the parameter row selected by bracket under regime.
//
// Unsplit regimes take a category bracket and reject tier brackets with
// ErrTierNotApplicable; the subdivided regime takes a tier bracket and
// rejects category brackets with ErrTierRequired. A missing row yields
// ErrParametersUnavailable.
func (e *Engine) GetParameters(regime domain.Regime, bracket domain.Bracket) (domain.CategoryParameters, error) {
	if !regime.Valid() {
		return domain.CategoryParameters{}, fmt.Errorf("%w: %q", domain.ErrUnknownRegime, regime)
	}

	switch b := bracket.(type) {
	case domain.CategoryBracket:
		if regime.Subdivided() {
			return domain.CategoryParameters{}, fmt.Errorf("%w: %s under %s", domain.ErrTierRequired, b, regime)
		}
		params, ok := e.Tables.Category(regime, b.Category)
		if !ok {
			return domain.CategoryParameters{}, fmt.Errorf("%w: %s under %s", domain.ErrParametersUnavailable, b, regime)
		}
		return params, nil

	case domain.TierBracket:
		if !regime.Subdivided() {
			return domain.CategoryParameters{}, fmt.Errorf("%w: %s under %s", domain.ErrTierNotApplicable, b, regime)
		}
		for _, t := range e.Tables.Tiers(regime, b.Tier.Category) {
			if t.Rank == b.Tier.Rank {
				return t.Parameters, nil
			}
		}
		return domain.CategoryParameters{}, fmt.Errorf("%w: %s under %s", domain.ErrParametersUnavailable, b, regime)

	default:
		return domain.CategoryParameters{}, fmt.Errorf("unsupported bracket %v", bracket)
	}
}

// ClassifyTier selects the income tier of category under regime. An income
// below the lowest band falls into the lowest tier.
func (e *Engine) ClassifyTier(regime domain.Regime, category domain.CategoryCode, income money.ManYen) (domain.IncomeTier, error) {
	tiers := e.Tables.Tiers(regime, category)
	tier, ok := selectTier(tiers, income)
	if !ok {
		return domain.IncomeTier{}, fmt.Errorf("%w: category %s under %s", domain.ErrNoTiers, category, regime)
	}
	if !tier.Contains(income) {
		e.Logger.Warnf("income %s outside every %s tier under %s; using %s", income, category, regime, tier.ID())
	}
	return tier, nil
}

// ComputeRefund estimates the refund for category under the current regime
func (e *Engine) ComputeRefund(category domain.CategoryCode, payments []domain.ProviderPayment, manyTimes bool) (*domain.RefundCalculationResult, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	params, err := e.GetParameters(domain.RegimeCurrent, domain.ForCategory(category))
	if err != nil {
		return nil, err
	}

	result, err := EstimateRefund(params, payments, manyTimes)
	if err != nil {
		return nil, err
	}
	result.Regime = domain.RegimeCurrent
	result.Category = category
	e.logResult(result)
	return result, nil
}

// Estimate picks the regime in force for the request's target month (the
// current regime when no month is given), resolves the income tier when that
// regime is subdivided, and runs the refund steps.
func (e *Engine) Estimate(req domain.RefundRequest) (*domain.RefundCalculationResult, error) {
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, req.Category)
	}

	regime := domain.RegimeForMonth(req.TargetMonth)
	e.Logger.Debugf("target month %s resolves to regime %s", req.TargetMonth.Format("2006-01"), regime)

	params, tier, err := e.resolve(regime, req.Category, req.Income)
	if err != nil {
		return nil, err
	}

	result, err := EstimateRefund(params, req.Payments, req.ManyTimes)
	if err != nil {
		return nil, err
	}
	result.Regime = regime
	result.Category = req.Category
	result.Tier = tier
	result.TargetMonth = req.TargetMonth
	e.logResult(result)
	return result, nil
}

// resolve finds the parameter row for category under regime, selecting the
// income tier first when the regime is subdivided.
func (e *Engine) resolve(regime domain.Regime, category domain.CategoryCode, income *money.ManYen) (domain.CategoryParameters, *domain.IncomeTier, error) {
	if !regime.Subdivided() {
		params, err := e.GetParameters(regime, domain.ForCategory(category))
		return params, nil, err
	}

	if income == nil {
		return domain.CategoryParameters{}, nil, fmt.Errorf("%w: income is needed to pick a %s tier under %s",
			domain.ErrTierRequired, category, regime)
	}

	tier, err := e.ClassifyTier(regime, category, *income)
	if errors.Is(err, domain.ErrNoTiers) {
		return domain.CategoryParameters{}, nil, fmt.Errorf("%w: category %s under %s", domain.ErrParametersUnavailable, category, regime)
	}
	if err != nil {
		return domain.CategoryParameters{}, nil, err
	}

	params, err := e.GetParameters(regime, domain.ForTier(tier))
	if err != nil {
		return domain.CategoryParameters{}, nil, err
	}
	return params, &tier, nil
}

func (e *Engine) logResult(r *domain.RefundCalculationResult) {
	e.Logger.Debugf("regime=%s category=%s eligible=%d/%d copay=%s cost=%s limit=%s refund=%s",
		r.Regime, r.Category, len(r.EligiblePayments()), len(r.Payments),
		r.TotalEligibleCoPay, r.TotalMedicalCost, r.SelfPaymentLimit, r.Refund)
}
