package calculation

import (
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/shopspring/decimal"
)

// MinimumEligiblePayment is the per-provider co-payment a bill must reach to
// count toward the monthly aggregate.
var MinimumEligiblePayment = money.NewYen(21000)

// PatientLiabilityRate is the co-payment share used to back-derive total
// medical cost. Reduced rates (children, some elderly brackets) are not modelled.
var PatientLiabilityRate = decimal.NewFromFloat(0.3)

// IsEligible reports whether a single payment counts toward the aggregate
func IsEligible(amount money.Yen) bool {
	return amount.GreaterThanOrEqual(MinimumEligiblePayment)
}

// EstimateRefund runs the five refund steps against one parameter row.
// payments is never modified; the result carries its own itemized copy.
func EstimateRefund(params domain.CategoryParameters, payments []domain.ProviderPayment, manyTimes bool) (*domain.RefundCalculationResult, error) {
	if len(payments) == 0 {
		return nil, domain.NewInputError(domain.ErrEmptyInput, "")
	}

	itemized := make([]domain.ProviderPayment, len(payments))
	total := money.ZeroYen()
	eligible := 0
	for i, p := range payments {
		itemized[i] = domain.ProviderPayment{Label: p.Label, Amount: p.Amount, Eligible: IsEligible(p.Amount)}
		if itemized[i].Eligible {
			total = total.Add(p.Amount)
			eligible++
		}
	}

	if eligible == 0 {
		return nil, domain.NewInputError(domain.ErrNoEligiblePayments,
			fmt.Sprintf("%d payment(s), all below %s yen", len(payments), MinimumEligiblePayment))
	}

	medicalCost := total.Div(PatientLiabilityRate).Round()
	limit := ComputeLimit(params, medicalCost, manyTimes)

	return &domain.RefundCalculationResult{
		Parameters:         params,
		Payments:           itemized,
		TotalEligibleCoPay: total,
		TotalMedicalCost:   medicalCost,
		SelfPaymentLimit:   limit,
		ManyTimes:          manyTimes,
		Refund:             money.MaxYen(money.ZeroYen(), total.Sub(limit)),
	}, nil
}
