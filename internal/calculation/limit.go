package calculation

import (
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// ComputeLimit returns the monthly self-payment ceiling for the given
// parameters and 10/10ths medical cost.
//
// The marginal formula always rounds up to the next whole yen. Flat-rate
// parameters ignore totalMedicalCost. A negative cost is a caller error.
func ComputeLimit(params domain.CategoryParameters, totalMedicalCost money.Yen, manyTimes bool) money.Yen {
	if manyTimes {
		return params.ManyTimesAmount
	}

	if params.HasMarginalRate() {
		excess := money.MaxYen(money.ZeroYen(), totalMedicalCost.Sub(params.Threshold))
		return params.BaseAmount.Add(excess.Mul(params.Rate)).Ceil()
	}

	return params.BaseAmount
}
